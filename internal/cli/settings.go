package cli

import (
	"fmt"

	"github.com/julianstephens/garden/internal/models"
	"github.com/julianstephens/garden/internal/storage"
)

type SettingsCmd struct {
	Song struct {
		Show SongShowCmd `cmd:"" help:"Show the current song." default:"1"`
		Set  SongSetCmd  `cmd:"" help:"Set the current song."`
	} `cmd:"" help:"Manage the 'currently listening to' widget."`
}

type SongShowCmd struct{}

func (c *SongShowCmd) Run(ctx *Context) error {
	song, err := storage.CurrentSong(ctx.Store)
	if err != nil {
		return err
	}

	fmt.Printf("Currently listening to: %s — %s\n", song.Title, song.Artist)
	if song.SpotifyURL != "" {
		fmt.Printf("  %s\n", song.SpotifyURL)
	}
	return nil
}

type SongSetCmd struct {
	Title      string `arg:"" help:"Song title."`
	Artist     string `arg:"" help:"Artist name."`
	AlbumCover string `help:"Album cover image path or URL." default:""`
	SpotifyURL string `help:"Spotify track URL." default:""`
}

func (c *SongSetCmd) Run(ctx *Context) error {
	song := models.Song{
		Title:      c.Title,
		Artist:     c.Artist,
		AlbumCover: c.AlbumCover,
		SpotifyURL: c.SpotifyURL,
	}
	if err := storage.SetCurrentSong(ctx.Store, song); err != nil {
		return err
	}

	fmt.Printf("Current song set to: %s — %s\n", song.Title, song.Artist)
	return nil
}
