package actors

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"fritter/internal/api"
	"fritter/internal/models"
	"fritter/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, username string) (string, error)
}

type (
	RegisterUserMsg struct {
		Username string
		Password string
	}

	LoginMsg struct {
		Username string
		Password string
	}

	GetUserByNameMsg struct {
		Username string
	}
)

// UserActor registers accounts and exchanges credentials for tokens.
type UserActor struct {
	Deps
	tokens TokenIssuer
}

func NewUserActor(deps Deps, tokens TokenIssuer) actor.Actor {
	return &UserActor{Deps: deps, tokens: tokens}
}

func (a *UserActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		slog.Debug("UserActor started", "pid", context.Self().String())
	case *RegisterUserMsg:
		a.handleRegister(context, msg)
	case *LoginMsg:
		a.handleLogin(context, msg)
	case *GetUserByNameMsg:
		ctx, cancel := storeContext()
		defer cancel()
		user, err := a.DB.GetUserByUsername(ctx, msg.Username)
		if err != nil {
			respondError(context, "get user", err)
			return
		}
		context.Respond(a.Resolver.UserView(user))
	}
}

func (a *UserActor) handleRegister(context actor.Context, msg *RegisterUserMsg) {
	defer a.observe("register_user", time.Now())
	username := strings.TrimSpace(msg.Username)
	if username == "" || msg.Password == "" {
		context.Respond(utils.NewInvalidInputError("Username and password must be non-empty."))
		return
	}

	hashed, err := hashPassword(msg.Password)
	if err != nil {
		respondError(context, "register user", err)
		return
	}

	ctx, cancel := storeContext()
	defer cancel()

	user := &models.User{
		ID:             uuid.New(),
		Username:       username,
		HashedPassword: hashed,
		CreatedAt:      time.Now(),
	}
	if err := a.DB.SaveUser(ctx, user); err != nil {
		respondError(context, "register user", err)
		return
	}
	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	context.Respond(a.Resolver.UserView(user))
}

func (a *UserActor) handleLogin(context actor.Context, msg *LoginMsg) {
	defer a.observe("login", time.Now())
	ctx, cancel := storeContext()
	defer cancel()

	invalid := utils.NewAppError(utils.ErrInvalidCredentials, "Invalid username or password", nil)

	user, err := a.DB.GetUserByUsername(ctx, strings.TrimSpace(msg.Username))
	if utils.IsNotFound(err) {
		context.Respond(invalid)
		return
	}
	if err != nil {
		respondError(context, "login", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(msg.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			slog.Warn("password comparison failed", "user_id", user.ID, "error", err)
		}
		context.Respond(invalid)
		return
	}

	token, err := a.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		respondError(context, "login", err)
		return
	}
	context.Respond(&api.LoginResponse{
		Success: true,
		Token:   token,
		UserID:  user.ID.String(),
	})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}
