package stubapi

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"

	"github.com/five82/roost/internal/api"
	"github.com/five82/roost/internal/domain"
)

const localsEmail = "email"

// Server is an in-memory six-cities API.
type Server struct {
	app    *fiber.App
	tokens tokenIssuer
	now    func() time.Time

	mu        sync.RWMutex
	offers    []api.ServerOffer
	reviews   map[string][]api.ServerReview
	users     map[string]api.ServerAuthInfo  // by email, without token
	favorites map[string]map[string]struct{} // email -> offer ids
}

// New builds a server seeded with the fixture catalogue.
func New(cfg Config) *Server {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}

	s := &Server{
		tokens:    tokenIssuer{secret: []byte(cfg.Secret), ttl: ttl, now: now},
		now:       now,
		offers:    seedOffers(),
		reviews:   seedReviews(),
		users:     make(map[string]api.ServerAuthInfo),
		favorites: make(map[string]map[string]struct{}),
	}

	app := fiber.New(fiber.Config{
		AppName:      "roost stub API",
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	if cfg.AccessLog {
		app.Use(logger.New())
	}
	s.routes(app)
	s.app = app
	return s
}

// App exposes the fiber app, mainly for app.Test in tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops a running server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) routes(app *fiber.App) {
	auth := s.requireAuth()

	app.Get("/offers", s.listOffers)
	app.Get("/offers/:id", s.getOffer)
	app.Get("/offers/:id/nearby", s.nearbyOffers)

	// Route middleware goes after the handler; fiber runs it first.
	app.Get("/comments/:id", s.listComments)
	app.Post("/comments/:id", s.postComment, auth)

	app.Get("/login", s.checkLogin, auth)
	app.Post("/login", s.login)

	favorites := app.Group("/favorite")
	favorites.Use(auth)
	favorites.Get("/", s.listFavorites)
	favorites.Post("/:id/:status", s.setFavorite)
}

// requireAuth rejects requests without a valid X-Token.
func (s *Server) requireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		email, err := s.tokens.verify(c.Get(api.TokenHeader))
		if err != nil {
			return unauthorized(c)
		}
		c.Locals(localsEmail, email)
		return c.Next()
	}
}

// session returns the email that requireAuth stored for this request.
func session(c fiber.Ctx) (string, bool) {
	email, ok := c.Locals(localsEmail).(string)
	return email, ok && email != ""
}

func unauthorized(c fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Invalid or missing token",
	})
}

// viewer returns the email behind an optional token.
func (s *Server) viewer(c fiber.Ctx) string {
	if email, ok := c.Locals(localsEmail).(string); ok {
		return email
	}
	email, err := s.tokens.verify(c.Get(api.TokenHeader))
	if err != nil {
		return ""
	}
	return email
}

func (s *Server) listOffers(c fiber.Ctx) error {
	email := s.viewer(c)
	s.mu.RLock()
	out := make([]api.ServerOffer, 0, len(s.offers))
	for _, o := range s.offers {
		out = append(out, s.decorate(o, email))
	}
	s.mu.RUnlock()
	return c.JSON(out)
}

func (s *Server) getOffer(c fiber.Ctx) error {
	email := s.viewer(c)
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.findOffer(c.Params("id"))
	if !ok {
		return notFound(c)
	}
	return c.JSON(s.decorate(o, email))
}

func (s *Server) nearbyOffers(c fiber.Ctx) error {
	email := s.viewer(c)
	s.mu.RLock()
	defer s.mu.RUnlock()
	target, ok := s.findOffer(c.Params("id"))
	if !ok {
		return notFound(c)
	}
	out := make([]api.ServerOffer, 0)
	for _, o := range s.offers {
		if o.ID != target.ID && o.City.Name == target.City.Name {
			out = append(out, s.decorate(o, email))
		}
	}
	return c.JSON(out)
}

func (s *Server) listComments(c fiber.Ctx) error {
	id := c.Params("id")
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.findOffer(id); !ok {
		return notFound(c)
	}
	out := append([]api.ServerReview{}, s.reviews[id]...)
	return c.JSON(out)
}

func (s *Server) postComment(c fiber.Ctx) error {
	email, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	id := c.Params("id")
	var req api.CommentRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := domain.ValidateReview(req.Rating, req.Comment); err != nil {
		return badRequest(c, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.findOffer(id); !ok {
		return notFound(c)
	}
	user := s.userLocked(email)
	review := api.ServerReview{
		ID:      api.WireID(uuid.NewString()),
		Date:    s.now().UTC().Format(time.RFC3339Nano),
		User:    api.ServerUser{Name: user.Name, AvatarURL: user.AvatarURL, IsPro: user.IsPro},
		Comment: strings.TrimSpace(req.Comment),
		Rating:  req.Rating,
	}
	s.reviews[id] = append(s.reviews[id], review)
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (s *Server) checkLogin(c fiber.Ctx) error {
	email, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	s.mu.Lock()
	user := s.userLocked(email)
	s.mu.Unlock()
	user.Token = c.Get(api.TokenHeader)
	return c.JSON(user)
}

func (s *Server) login(c fiber.Ctx) error {
	var req api.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := domain.ValidateCredentials(req.Email, req.Password); err != nil {
		return badRequest(c, err.Error())
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	token, err := s.tokens.issue(email)
	if err != nil {
		return err
	}
	s.mu.Lock()
	user := s.userLocked(email)
	s.mu.Unlock()
	user.Token = token
	return c.JSON(user)
}

func (s *Server) listFavorites(c fiber.Ctx) error {
	email, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.ServerOffer, 0)
	for _, o := range s.offers {
		if _, ok := s.favorites[email][string(o.ID)]; ok {
			out = append(out, s.decorate(o, email))
		}
	}
	return c.JSON(out)
}

func (s *Server) setFavorite(c fiber.Ctx) error {
	email, ok := session(c)
	if !ok {
		return unauthorized(c)
	}
	id := c.Params("id")
	var add bool
	switch c.Params("status") {
	case "1":
		add = true
	case "0":
		add = false
	default:
		return badRequest(c, "Status must be 0 or 1")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.findOffer(id)
	if !ok {
		return notFound(c)
	}
	set := s.favorites[email]
	if set == nil {
		set = make(map[string]struct{})
		s.favorites[email] = set
	}
	if add {
		set[id] = struct{}{}
	} else {
		delete(set, id)
	}
	return c.JSON(s.decorate(o, email))
}

// findOffer must be called with mu held.
func (s *Server) findOffer(id string) (api.ServerOffer, bool) {
	for _, o := range s.offers {
		if string(o.ID) == id {
			return o, true
		}
	}
	return api.ServerOffer{}, false
}

// decorate sets the per-user favorite flag. Must be called with mu held.
func (s *Server) decorate(o api.ServerOffer, email string) api.ServerOffer {
	_, fav := s.favorites[email][string(o.ID)]
	o.IsFavorite = fav
	return o
}

// userLocked returns the profile for email, creating it on first use.
func (s *Server) userLocked(email string) api.ServerAuthInfo {
	if u, ok := s.users[email]; ok {
		return u
	}
	name := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		name = email[:at]
	}
	u := api.ServerAuthInfo{
		Email:     email,
		Name:      name,
		AvatarURL: "img/avatar.svg",
	}
	s.users[email] = u
	return u
}

func notFound(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Offer not found"})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// errorHandler renders unhandled errors as JSON.
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
