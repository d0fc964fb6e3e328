package http

import "net/http"

// headerTransport adds fixed headers unless the request already carries them.
type headerTransport struct {
	headers   map[string]string
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())
	for k, v := range t.headers {
		if reqCopy.Header.Get(k) == "" {
			reqCopy.Header.Set(k, v)
		}
	}
	return t.transport.RoundTrip(reqCopy)
}

func withDefaultHeader(key, value string) HttpOpts {
	if value == "" {
		return func(*clientConfig) {}
	}
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &headerTransport{
			headers:   map[string]string{key: value},
			transport: rt,
		}
	})
}

// WithAuthToken sends a bearer token with every request. An empty token is a no-op.
func WithAuthToken(token string) HttpOpts {
	if token == "" {
		return withDefaultHeader("Authorization", "")
	}
	return withDefaultHeader("Authorization", "Bearer "+token)
}

func WithUserAgent(agent string) HttpOpts {
	return withDefaultHeader("User-Agent", agent)
}
