package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Database    Database

	Catalog    Catalog    `envPrefix:"CATALOG_"`
	Payment    Payment    `envPrefix:"PAYMENT_"`
	BrainTree  Braintree  `envPrefix:"BRAINTREE_"`
	Cloudinary Cloudinary `envPrefix:"CLOUDINARY_"`
	Auth       Auth       `envPrefix:"AUTH_"`
	Sync       Sync       `envPrefix:"SYNC_"`
}

type Database struct {
	Driver string `env:"DATABASE_DRIVER" envDefault:"mysql"` // mysql | sqlite
	URL    string `env:"DATABASE_URL"`
}

// Catalog points at the external product catalog API (items, images,
// categories, inventory counts).
type Catalog struct {
	BaseApiURL  string `env:"BASE_API_URL" envDefault:"https://connect.squareup.com"`
	AccessToken string `env:"ACCESS_TOKEN"`
}

// Payment selects and configures the card-charging gateway.
type Payment struct {
	Provider    string `env:"PROVIDER" envDefault:"square"` // square | braintree
	BaseApiURL  string `env:"BASE_API_URL" envDefault:"https://connect.squareup.com"`
	AccessToken string `env:"ACCESS_TOKEN"`
	Currency    string `env:"CURRENCY" envDefault:"USD"`
}

type Braintree struct {
	Environment string `env:"ENVIRONMENT"`
	MerchantID  string `env:"MERCHANT_ID"`
	PublicKey   string `env:"PUBLIC_KEY"`
	PrivateKey  string `env:"PRIVATE_KEY"`
}

type Cloudinary struct {
	URL    string `env:"URL"`
	Folder string `env:"FOLDER" envDefault:"storefront"`
}

type Auth struct {
	JWTSecret     string `env:"JWT_SECRET"`
	TokenTTLHours int    `env:"TOKEN_TTL_HOURS" envDefault:"12"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

type Sync struct {
	RequestTTLMinutes int `env:"REQUEST_TTL_MINUTES" envDefault:"5"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
