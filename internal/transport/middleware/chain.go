package middleware

import "net/http"

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain folds several middleware into one, outermost first:
// Chain(Recovery, CORS)(mux) runs Recovery around CORS around the mux.
// The app wires its whole stack through a single Chain call.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}
