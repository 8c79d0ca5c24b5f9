package models

// Song is the "currently listening to" widget setting, stored under the
// current_song settings key as JSON.
type Song struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	AlbumCover string `json:"albumCover"`
	SpotifyURL string `json:"spotifyUrl"`
}

// DefaultSong is returned when no current_song setting has been saved.
func DefaultSong() Song {
	return Song{
		Title:      "Don't Look Back in Anger",
		Artist:     "Oasis",
		AlbumCover: "/dontlookbackinanger.jpg",
		SpotifyURL: "https://open.spotify.com/track/7CVYxHq1L0Z4G84jTDS6Jl",
	}
}
