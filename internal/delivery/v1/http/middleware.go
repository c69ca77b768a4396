package http

import (
	"net/http"

	"github.com/radhe-vastra/storefront-backend/pkg/e"
)

const passphraseHeader = "X-Admin-Passphrase"

// PassphraseGate закрывает админ-поверхность общим секретом.
// Простое сравнение строк: без хэширования, лимитов и сессий.
func PassphraseGate(passphrase string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(passphraseHeader) != passphrase {
				WriteError(w, e.ErrWrongPassphrase)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
