package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/SotorivaXL/academic-event-manag-main/core"
	inmemdb "github.com/SotorivaXL/academic-event-manag-main/storage/inmem"
)

const (
	tokenAccess  = "access"
	tokenRefresh = "refresh"

	contextTokenKey = "userToken"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Type  string   `json:"typ"`
	Email string   `json:"email,omitempty"`
	Role  string   `json:"role,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

type tokenIssuer struct {
	issuer     string
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func newTokenIssuer(conf *core.Config) *tokenIssuer {
	return &tokenIssuer{
		issuer:     conf.AppName,
		key:        []byte(conf.Server.SecretKey),
		accessTTL:  conf.Server.JWTExpirationDelta,
		refreshTTL: conf.Server.JWTRefreshExpirationDelta,
		now:        time.Now,
	}
}

func (ti *tokenIssuer) jwtConfig() middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    ti.key,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

func (ti *tokenIssuer) claims(usr inmemdb.User, typ string, ttl time.Duration) *Claims {
	now := ti.now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			Issuer:    ti.issuer,
			Subject:   strconv.Itoa(usr.ID),
			ExpiresAt: now.Add(ttl).Unix(),
			IssuedAt:  now.Unix(),
		},
		Type:  typ,
		Email: usr.Email,
		Role:  usr.Role,
		Roles: usr.Roles,
	}
}

// sign generates a signed JWT token string representing the Claims.
func (ti *tokenIssuer) sign(claims *Claims) (string, error) {
	if len(ti.key) == 0 {
		return "", core.NewShutdownError("no secret key configured: cannot sign tokens")
	}
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)
	ss, err := token.SignedString(ti.key)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// issue returns a fresh access/refresh pair and registers the refresh token id.
func (ti *tokenIssuer) issue(db *inmemdb.DB, usr inmemdb.User) (tokenResponse, error) {
	access, err := ti.sign(ti.claims(usr, tokenAccess, ti.accessTTL))
	if err != nil {
		return tokenResponse{}, err
	}
	rc := ti.claims(usr, tokenRefresh, ti.refreshTTL)
	refresh, err := ti.sign(rc)
	if err != nil {
		return tokenResponse{}, err
	}
	db.SaveRefreshToken(rc.Id, usr.ID)
	return tokenResponse{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}

// parseRefresh returns the claims of a valid, unexpired refresh token.
func (ti *tokenIssuer) parseRefresh(raw string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != middleware.AlgorithmHS256 {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return ti.key, nil
	})
	if err != nil || !token.Valid || claims.Type != tokenRefresh {
		return nil, errRefreshInvalid
	}
	return claims, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// accessTokenMiddleware refuses refresh tokens presented as bearer tokens.
func accessTokenMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil || claims.Type != tokenAccess {
			return errUnauthorized
		}
		return next(ctx)
	}
}

// roleMiddleware only lets through users holding one of roles.
func roleMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(ctx)
				}
				for _, r := range claims.Roles {
					if r == role {
						return next(ctx)
					}
				}
			}
			return errHttpForbidden
		}
	}
}

type (
	loginRequest struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}

	refreshRequest struct {
		RefreshToken string `json:"refresh_token"`
		Token        string `json:"token"`
	}

	tokenResponse struct {
		AccessToken  string        `json:"access_token"`
		RefreshToken string        `json:"refresh_token"`
		TokenType    string        `json:"token_type,omitempty"`
		User         *inmemdb.User `json:"user,omitempty"`
	}
)

type authApi struct {
	db     *inmemdb.DB
	tokens *tokenIssuer
}

func registerAuthAPI(g *echo.Group, db *inmemdb.DB, tokens *tokenIssuer) {
	api := authApi{db: db, tokens: tokens}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/refresh", api.refresh)
}

func (api *authApi) login(ctx echo.Context) error {
	var data loginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to loginRequest")
	}
	if data.Username == "" || data.Password == "" {
		return errAuthenticationFailed
	}

	usr, err := api.db.Authenticate(data.Username, data.Password)
	if err != nil {
		return errAuthenticationFailed
	}
	res, err := api.tokens.issue(api.db, usr)
	if err != nil {
		return errors.Wrap(err, "issuing tokens")
	}
	res.User = &usr
	return ctx.JSON(http.StatusOK, res)
}

func (api *authApi) refresh(ctx echo.Context) error {
	var data refreshRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to refreshRequest")
	}
	raw := data.RefreshToken
	if raw == "" {
		raw = data.Token
	}

	claims, err := api.tokens.parseRefresh(raw)
	if err != nil {
		return err
	}
	userID, err := api.db.UseRefreshToken(claims.Id)
	if err != nil {
		return errRefreshInvalid
	}
	usr, err := api.db.GetUser(userID)
	if err != nil {
		return errRefreshInvalid
	}

	res, err := api.tokens.issue(api.db, usr)
	if err != nil {
		return errors.Wrap(err, "issuing tokens")
	}
	res.TokenType = ""
	return ctx.JSON(http.StatusOK, res)
}
