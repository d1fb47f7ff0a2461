package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agri-connect/internal/core/auth"
	"agri-connect/internal/domain"
	"agri-connect/internal/store"
	httpez "agri-connect/internal/transport/http/ez"
)

// SessionModule 登录/注册/登出/个人资料。
// 身份解析本身不验证任何凭据（演示语义，login 永远成功），
// JWT 只用来守住受保护路径。
type SessionModule struct {
	Store *store.Store
	JWT   *auth.JWTer
}

func (m *SessionModule) Priority() int { return 10 } // 先挂，路由表里排前面好找

func (m *SessionModule) Mount(pub, priv *gin.RouterGroup) {
	ezPub := httpez.New(pub)
	ezPriv := httpez.New(priv)

	type loginIn struct {
		Email string `json:"email" binding:"required,email"`
		Role  string `json:"role"  binding:"required,oneof=farmer customer"`
	}
	type sessionOut struct {
		Token string      `json:"token"`
		IsNew bool        `json:"isNew"`
		User  domain.User `json:"user"`
	}

	// /auth/login：名册命中用既有身份，否则就地造新身份 + 发 JWT
	httpez.RegisterAction(ezPub, m.Store, httpez.Action[loginIn, sessionOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, st *store.Store, in *loginIn) (sessionOut, error) {
			u, isNew := st.Login(in.Email, domain.Role(in.Role))
			tok, err := m.JWT.Issue(u.ID, string(u.Role))
			if err != nil || tok == "" {
				return sessionOut{}, httpez.Internal("issue token failed", err)
			}
			return sessionOut{Token: tok, IsNew: isNew, User: u}, nil
		},
	})

	type registerIn struct {
		Name  string `json:"name"  binding:"required,max=64"`
		Email string `json:"email" binding:"required,email"`
		Role  string `json:"role"  binding:"required,oneof=farmer customer"`
	}
	// /auth/register：不查重，直接采用新身份
	httpez.RegisterAction(ezPub, m.Store, httpez.Action[registerIn, sessionOut]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, st *store.Store, in *registerIn) (sessionOut, error) {
			u := st.Register(in.Name, in.Email, domain.Role(in.Role))
			tok, err := m.JWT.Issue(u.ID, string(u.Role))
			if err != nil || tok == "" {
				return sessionOut{}, httpez.Internal("issue token failed", err)
			}
			return sessionOut{Token: tok, IsNew: true, User: u}, nil
		},
	})

	// /auth/logout：会话、购物车、心愿单一起清
	httpez.RegisterAction(ezPriv, m.Store, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/auth/logout",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, st *store.Store, _ *struct{}) (gin.H, error) {
			st.Logout()
			return gin.H{}, nil
		},
	})

	httpez.RegisterAction(ezPriv, m.Store, httpez.Action[struct{}, domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, st *store.Store, _ *struct{}) (domain.User, error) {
			u, ok := st.CurrentUser()
			if !ok {
				return domain.User{}, store.ErrNoSession
			}
			return u, nil
		},
	})

	httpez.RegisterAction(ezPriv, m.Store, httpez.Action[domain.ProfileUpdate, domain.User]{
		Method: http.MethodPut,
		Path:   "/me",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, st *store.Store, in *domain.ProfileUpdate) (domain.User, error) {
			return st.UpdateProfile(*in)
		},
	})
}
