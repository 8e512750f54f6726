package cookie

import (
	"net/http"
	"time"

	"court-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookieName = "access_token"
	// Every authenticated route lives under /api.
	accessTokenPath = "/api"
)

func SetAccessToken(c *gin.Context, cfg config.CookieConfig, accessToken string, expiry time.Duration) {
	http.SetCookie(c.Writer, accessTokenCookie(cfg, accessToken, int(expiry.Seconds())))
}

func ClearAccessToken(c *gin.Context, cfg config.CookieConfig) {
	http.SetCookie(c.Writer, accessTokenCookie(cfg, "", -1))
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

func accessTokenCookie(cfg config.CookieConfig, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     AccessTokenCookieName,
		Value:    value,
		Path:     accessTokenPath,
		Domain:   cfg.Domain,
		MaxAge:   maxAge,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: sameSite(cfg.SameSite),
	}
}

func sameSite(v string) http.SameSite {
	switch v {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
