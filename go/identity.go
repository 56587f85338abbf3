package dispatchserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sessiondomain "github.com/Apurer/dharai-delivery/internal/domains/session/domain"
	"github.com/Apurer/dharai-delivery/internal/platform/clientid"
	apierrors "github.com/Apurer/dharai-delivery/internal/shared/errors"
)

const visitorKey = "dharai.visitor"

// IdentityMiddleware resolves the client and tab identifiers from their signed
// cookies, minting fresh ones when missing or invalid. The client cookie
// persists across browser restarts; the tab cookie lives for the browsing session.
func IdentityMiddleware(issuer *clientid.Issuer, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteLaxMode)
		clientID, err := resolveIdentity(c, issuer, clientid.KindClient, clientid.ClientCookie, int(issuer.ClientTTL().Seconds()), secure)
		if err != nil {
			respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
			c.Abort()
			return
		}
		tabID, err := resolveIdentity(c, issuer, clientid.KindTab, clientid.TabCookie, 0, secure)
		if err != nil {
			respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
			c.Abort()
			return
		}
		c.Set(visitorKey, sessiondomain.Visitor{ClientID: clientID, TabID: tabID})
		c.Next()
	}
}

func resolveIdentity(c *gin.Context, issuer *clientid.Issuer, kind clientid.Kind, cookie string, maxAge int, secure bool) (string, error) {
	if raw, err := c.Cookie(cookie); err == nil {
		if id, err := issuer.Parse(kind, raw); err == nil {
			return id, nil
		}
	}
	id, token, err := issuer.Issue(kind)
	if err != nil {
		return "", err
	}
	c.SetCookie(cookie, token, maxAge, "/", "", secure, true)
	return id, nil
}

func visitorFrom(c *gin.Context) sessiondomain.Visitor {
	if v, ok := c.Get(visitorKey); ok {
		if visitor, ok := v.(sessiondomain.Visitor); ok {
			return visitor
		}
	}
	return sessiondomain.Visitor{}
}
