package models

import (
	"time"

	"github.com/animerec/anirec/internal/api"
	"github.com/animerec/anirec/internal/config"
	"github.com/animerec/anirec/internal/log"
	"github.com/animerec/anirec/internal/poster"
	"github.com/animerec/anirec/internal/service"
	"github.com/animerec/anirec/internal/session"
	kb "github.com/animerec/anirec/internal/ui/tui/keybindings"
	tea "github.com/charmbracelet/bubbletea"
)

// AppModel is the top level bubbletea model.  It owns the shared API client,
// the poster resolver and the per-session services, routes messages to the
// active page model and enforces the session gate for authenticated views.
type AppModel struct {
	config *config.Config
	store  *session.Store

	client  *api.Client
	posters *poster.Resolver

	sess         *session.Session
	catalogSvc   *service.Catalog
	favoritesSvc *service.Favorites
	recommender  *service.Recommender

	activeView  View
	activeModal Modal
	helpModel   *HelpModel

	home            *HomeModel
	login           *LoginModel
	signup          *SignupModel
	catalog         *CatalogModel
	favorites       *FavoritesModel
	recommendations *RecommendationsModel

	width, height int
}

func NewAppModel(cfg *config.Config, store *session.Store) *AppModel {
	client := api.NewClient(cfg.Server.BaseURL)
	posters := poster.NewResolver(poster.Options{
		KitsuURL:   cfg.Poster.KitsuURL,
		AniListURL: cfg.Poster.AniListURL,
		Timeout:    time.Duration(cfg.Poster.TimeoutSeconds) * time.Second,
	})

	m := &AppModel{
		config:      cfg,
		store:       store,
		client:      client,
		posters:     posters,
		activeView:  ViewHome,
		activeModal: ModalNone,
	}
	m.login = NewLoginModel(client)
	m.signup = NewSignupModel(client)

	sess, err := store.Load()
	if err != nil {
		log.Warn("Could not load saved session, starting logged out", "error", err)
	}
	if sess != nil {
		log.Info("Resuming saved session", "user_id", sess.UserID, "name", sess.Name)
		m.startSession(sess)
		m.activeView = ViewCatalog
	}
	m.home = NewHomeModel(m.sess)

	return m
}

// startSession wires up the authenticated half of the application: bearer
// token on the client, the per-user services and the gated page models
func (m *AppModel) startSession(sess *session.Session) {
	m.sess = sess
	m.client.SetToken(sess.AccessToken)

	m.catalogSvc = service.NewCatalog(m.client, m.posters, m.config.UI.PageSize)
	m.favoritesSvc = service.NewFavorites(m.client, m.posters, sess.UserID)
	m.recommender = service.NewRecommender(m.client, m.posters, sess.UserID)

	m.catalog = NewCatalogModel(m.catalogSvc, m.favoritesSvc, sess.Name)
	m.favorites = NewFavoritesModel(m.favoritesSvc)
	m.recommendations = NewRecommendationsModel(m.favoritesSvc, m.recommender)
	m.home = NewHomeModel(sess)
}

// endSession clears the saved session and tears down everything that
// required authentication
func (m *AppModel) endSession() {
	if err := m.store.Clear(); err != nil {
		log.Warn("Failed to clear saved session", "error", err)
	}
	m.client.SetToken("")

	m.sess = nil
	m.catalogSvc = nil
	m.favoritesSvc = nil
	m.recommender = nil
	m.catalog = nil
	m.favorites = nil
	m.recommendations = nil

	m.login = NewLoginModel(m.client)
	m.signup = NewSignupModel(m.client)
	m.home = NewHomeModel(nil)
	m.activeView = ViewHome
	m.activeModal = ModalNone

	log.Info("Logged out")
}

// activeModel returns the page model for the current view, or nil if the
// view is not available in the current session state
func (m *AppModel) activeModel() Model {
	switch m.activeView {
	case ViewHome:
		return m.home
	case ViewLogin:
		return m.login
	case ViewSignup:
		return m.signup
	case ViewCatalog:
		if m.catalog == nil {
			return nil
		}
		return m.catalog
	case ViewFavorites:
		if m.favorites == nil {
			return nil
		}
		return m.favorites
	case ViewRecommendations:
		if m.recommendations == nil {
			return nil
		}
		return m.recommendations
	}
	return nil
}

// navigate switches to the target view.  Views that need a session fall back
// to the login form when nobody is logged in.
func (m *AppModel) navigate(target View) tea.Cmd {
	switch target {
	case ViewCatalog, ViewFavorites, ViewRecommendations:
		if m.sess == nil {
			log.Warn("Navigation to authenticated view without session", "target", target)
			target = ViewLogin
		}
	}

	m.activeView = target
	m.activeModal = ModalNone

	model := m.activeModel()
	if model == nil {
		return nil
	}
	model.Resize(m.width, m.height)
	return model.Init()
}

// back handles esc presses that were not consumed by the active page
func (m *AppModel) back() tea.Cmd {
	switch m.activeView {
	case ViewLogin, ViewSignup:
		return m.navigate(ViewHome)
	case ViewFavorites, ViewRecommendations:
		return m.navigate(ViewCatalog)
	case ViewCatalog:
		return m.navigate(ViewHome)
	}
	return nil
}

func (m *AppModel) Init() tea.Cmd {
	if model := m.activeModel(); model != nil {
		return model.Init()
	}
	return nil
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, model := range []Model{m.home, m.login, m.signup, m.catalog, m.favorites, m.recommendations} {
			if model != nil {
				model.Resize(msg.Width, msg.Height)
			}
		}
		if m.helpModel != nil {
			m.helpModel.Resize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case NavigateMsg:
		return m, m.navigate(msg.Target)

	case LoginSuccessMsg:
		if err := m.store.Save(msg.Session); err != nil {
			// The session still works for this run, it just won't
			// survive a restart
			log.Warn("Failed to persist session", "error", err)
		}
		log.Info("Login successful", "user_id", msg.Session.UserID, "name", msg.Session.Name)
		m.startSession(msg.Session)
		m.login = NewLoginModel(m.client)
		return m, m.navigate(ViewCatalog)

	case SignupSuccessMsg:
		m.signup = NewSignupModel(m.client)
		m.login = NewLoginModel(m.client)
		m.login.SetNotice("Account created for " + msg.Email + ". Log in to continue.")
		return m, m.navigate(ViewLogin)
	}

	return m, m.updateActive(msg)
}

func (m *AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch kb.GetActionByKey(msg, kb.ContextGlobal) {
	case kb.ActionQuit:
		log.Info("Quit requested")
		return m, tea.Quit

	case kb.ActionToggleHelp:
		if m.activeModal == ModalHelp {
			m.activeModal = ModalNone
			m.helpModel = nil
			return m, nil
		}
		m.activeModal = ModalHelp
		m.helpModel = NewHelpModel(m.activeView)
		m.helpModel.Resize(m.width, m.height)
		return m, m.helpModel.Init()

	case kb.ActionLogout:
		if m.sess != nil {
			m.endSession()
		}
		return m, nil

	case kb.ActionBack:
		if m.activeModal != ModalNone {
			m.activeModal = ModalNone
			m.helpModel = nil
			return m, nil
		}
		// Pages with an active text input consume esc themselves
		if m.catalog != nil && m.activeView == ViewCatalog && m.catalog.searchMode {
			return m, m.updateActive(msg)
		}
		if m.favorites != nil && m.activeView == ViewFavorites && m.favorites.filterMode {
			return m, m.updateActive(msg)
		}
		return m, m.back()
	}

	if m.activeModal == ModalHelp {
		_, cmd := m.helpModel.Update(msg)
		return m, cmd
	}
	return m, m.updateActive(msg)
}

// updateActive forwards a message to the current page model.  Page models
// are pointers and mutate in place, so the returned model can be ignored.
// Data messages keep flowing to the page even while the help modal is open.
func (m *AppModel) updateActive(msg tea.Msg) tea.Cmd {
	model := m.activeModel()
	if model == nil {
		return nil
	}
	_, cmd := model.Update(msg)
	return cmd
}

func (m *AppModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.activeModal == ModalHelp && m.helpModel != nil {
		return m.helpModel.View()
	}

	model := m.activeModel()
	if model == nil {
		return "Unknown view"
	}
	return model.View()
}
