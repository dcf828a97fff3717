package container

import (
	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/secrets"
)

type options struct {
	suite    secrets.Suite
	cipher   cryptox.CipherKind
	logger   logging.Logger
	keyCache bool
}

// Option configures a Container.
type Option func(*options)

// WithSuite sets the codec, hasher and clock used for secrets.
func WithSuite(s secrets.Suite) Option {
	return func(o *options) { o.suite = s }
}

// WithCipher sets the cipher used for new secrets. The key size always
// follows the key length of the entry the secret is encrypted under.
func WithCipher(kind cryptox.CipherKind) Option {
	return func(o *options) { o.cipher = kind }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithKeyCache keeps keys derived from passwords in memory so repeated
// operations with the same password skip the derivation.
func WithKeyCache(enabled bool) Option {
	return func(o *options) { o.keyCache = enabled }
}

func buildOptions(opts []Option) options {
	o := options{
		suite:  secrets.DefaultSuite(),
		cipher: cryptox.AESCTR,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.suite = o.suite.WithDefaults()
	if o.logger == nil {
		o.logger = logging.Nop()
	}
	return o
}
