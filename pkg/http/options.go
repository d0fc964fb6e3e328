package http

import "time"

type HttpOpts func(*clientConfig)

// WithConnClientTimeout bounds dialing a new connection.
func WithConnClientTimeout(timeout time.Duration) HttpOpts {
	return func(c *clientConfig) {
		c.dialTimeout = timeout
	}
}

// WithRequestTimeout bounds a whole request, body read included.
func WithRequestTimeout(timeout time.Duration) HttpOpts {
	return func(c *clientConfig) {
		c.requestTimeout = timeout
	}
}

func WithClientKeepAlive(keepAlive time.Duration) HttpOpts {
	return func(c *clientConfig) {
		c.keepAlive = keepAlive
	}
}

// WithResponseHeaderTimeout bounds the wait for the status line once the request is sent.
func WithResponseHeaderTimeout(timeout time.Duration) HttpOpts {
	return func(c *clientConfig) {
		c.responseHeaderTimeout = timeout
	}
}

func WithIdleConnTimeout(timeout time.Duration) HttpOpts {
	return func(c *clientConfig) {
		c.idleConnTimeout = timeout
	}
}

func WithTransport(transport TransportFunc) HttpOpts {
	return func(c *clientConfig) {
		c.transports = append(c.transports, transport)
	}
}
