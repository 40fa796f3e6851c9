package config

import "os"

func loadProductionConfig(cfg *Config) {
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.ServerHost = "0.0.0.0"

	// Live key wins when both deployments are configured.
	cfg.StripeSecretKey = os.Getenv("STRIPE_SECRET_KEY_LIVE")
	if cfg.StripeSecretKey == "" {
		cfg.StripeSecretKey = os.Getenv("STRIPE_SECRET_KEY")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.AdminUsername = os.Getenv("ADMIN_USERNAME")
	cfg.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
}
