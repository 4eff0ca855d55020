// Package auth provides signup, login and session-bound request
// authorization for the application.
//
// Sessions are stored server-side in SQLite and carried by an opaque
// cookie token; the browser never sees session data. Passwords are
// hashed with bcrypt.
//
// # Configuration
//
//	AUTH_SESSION_LIFETIME=24h   # Session duration
//	AUTH_BCRYPT_COST=12         # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true    # HTTPS-only cookies
//	AUTH_SESSION_SECRET=<hex>   # CSRF signing secret, auto-generated if empty
//
// # Usage
//
// Wire up in the entrypoint:
//
//	service := auth.NewService(userRepo, cfg.Auth)
//	sessions, _ := auth.NewSessionManager(sqlDB, cfg.Auth)
//	guards := auth.NewGuards(sessions)
//
// Guard routes:
//
//	router.GET("/auth/login", guards.RequireAnonymous(), controller.LoginPage)
//	router.GET("/auth/logout", guards.RequireAuthenticated(), controller.Logout)
package auth
