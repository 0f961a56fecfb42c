package tokenpkg

import "fmt"

// New returns the token maker of the given kind ("paseto" or "jwt").
func New(kind, key string) (Maker, error) {
	switch kind {
	case "", "paseto":
		return NewPasetoMaker(key)
	case "jwt":
		return NewJWTMaker(key)
	}

	return nil, fmt.Errorf("unsupported token type %q", kind)
}
