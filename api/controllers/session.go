package controllers

import (
	"net/http"

	"github.com/angelmondragon/stylin-backend/api/middleware"
	"github.com/angelmondragon/stylin-backend/internal/session"
	pkgerrors "github.com/angelmondragon/stylin-backend/pkg/errors"
)

func sessionFromRequest(r *http.Request) (*session.Session, error) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return sess, nil
}
