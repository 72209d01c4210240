package server

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET "+RouteIndex, ChainMiddleware(s.IndexHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.Handler())

	// CORS preflight for the browser client
	s.RegisterRouteHandler("OPTIONS /", ChainMiddleware(s.PreflightHandler(), s.CorsMiddleware))

	// AUTH
	s.RegisterRouteHandler("GET "+RouteProviderCallback, ChainMiddleware(s.ProviderCallbackHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.AuthMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthCallback, ChainMiddleware(s.CallbackHandler(), s.AuthMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthMe, ChainMiddleware(s.MeHandler(), s.SessionMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.SessionMiddleware()...))

	// Anonymous Spotify surface (client-credentials token)
	s.RegisterRouteHandler("GET "+RouteSpotifyToken, ChainMiddleware(s.ClientTokenHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteSpotifyTokenHealth, ChainMiddleware(s.TokenHealthHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteSpotifySearch, ChainMiddleware(s.SearchHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteSpotifySearchTracks, ChainMiddleware(s.SearchTracksHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteSpotifySearchArtists, ChainMiddleware(s.SearchArtistsHandler(), s.APIMiddleware()...))
}
