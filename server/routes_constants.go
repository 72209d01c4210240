package server

const (
	RouteIndex   = "/{$}"
	RouteHealth  = "/health"
	RouteMetrics = "/metrics"

	// Bare redirect target registered with Spotify; forwards to the API route
	RouteProviderCallback = "/callback"

	RouteAuthLogin    = "/api/auth/login"
	RouteAuthCallback = "/api/auth/callback"
	RouteAuthMe       = "/api/auth/me"
	RouteAuthLogout   = "/api/auth/logout"

	RouteSpotifyToken         = "/api/spotify/token"
	RouteSpotifyTokenHealth   = "/api/spotify/token/health"
	RouteSpotifySearch        = "/api/spotify/search"
	RouteSpotifySearchTracks  = "/api/spotify/search/tracks"
	RouteSpotifySearchArtists = "/api/spotify/search/artists"
)
