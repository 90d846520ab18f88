package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/notaryweb/internal/db"
	"github.com/notaryweb/internal/resource"
	"go.uber.org/zap"
)

const (
	sessionUserID          = "user_id"
	sessionUsername        = "username"
	sessionAuthenticatedAt = "authenticated_at"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func newUserView(user *db.User) userView {
	return userView{ID: user.ID, Username: user.Username}
}

// Login 校验用户名与密码，成功后写入签名会话；失败时不保存会话，因此不会下发 Cookie。
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload, "invalid request body") {
		return
	}

	user, err := a.auth.Authenticate(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, resource.ErrUnauthorized) {
			a.log.Warn("login failed", zap.String("username", payload.Username), zap.String("client_ip", c.ClientIP()))
			respondError(c, http.StatusUnauthorized, "invalid username or password")
			return
		}
		respondResourceError(c, a.log, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionUserID, user.ID)
	session.Set(sessionUsername, user.Username)
	session.Set(sessionAuthenticatedAt, a.now().Unix())
	if err := session.Save(); err != nil {
		a.log.Error("save session failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	a.log.Info("admin logged in", zap.Uint("user_id", user.ID))
	c.JSON(http.StatusOK, gin.H{"user": newUserView(user)})
}

// Logout 清除会话并让浏览器删除 Cookie
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true})
	if err := session.Save(); err != nil {
		a.log.Error("clear session failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me 返回当前会话对应的管理员
func (a *API) Me(c *gin.Context) {
	userID, ok := a.sessionUser(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := a.auth.FindByID(c.Request.Context(), userID)
	if err != nil {
		respondResourceError(c, a.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": newUserView(user)})
}

// AuthRequired 是后台接口的认证中间件，未登录或会话过期时返回 401。
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := a.sessionUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// sessionUser 读取会话中的用户 id，过期会话会被清除。
func (a *API) sessionUser(c *gin.Context) (uint, bool) {
	session := sessions.Default(c)

	userID, ok := session.Get(sessionUserID).(uint)
	if !ok || userID == 0 {
		return 0, false
	}

	issuedAt, ok := session.Get(sessionAuthenticatedAt).(int64)
	if !ok || a.now().After(time.Unix(issuedAt, 0).Add(a.sessionTTL)) {
		session.Clear()
		session.Options(sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true})
		_ = session.Save()
		return 0, false
	}
	return userID, true
}
