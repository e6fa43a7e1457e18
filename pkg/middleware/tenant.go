package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vendra-hq/vendra-sdk/pkg/composables"
	"github.com/vendra-hq/vendra-sdk/pkg/configuration"
)

// WithTenant lifts the tenant id supplied by the authentication layer into
// the context. A missing or malformed header leaves the context without a
// tenant; services reject such calls as Forbidden, never as public access.
func WithTenant() mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(conf.TenantIDHeader)
			if raw != "" {
				if tenantID, err := uuid.Parse(raw); err == nil {
					r = r.WithContext(composables.WithTenantID(r.Context(), tenantID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
