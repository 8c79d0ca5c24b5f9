package cli

import (
	"fmt"
	"strings"
)

type NoteCmd struct {
	Add    NoteAddCmd    `cmd:"" help:"Leave a note."`
	List   NoteListCmd   `cmd:"" help:"List notes, newest first."`
	Delete NoteDeleteCmd `cmd:"" help:"Delete a note."`
}

type NoteAddCmd struct {
	Content []string `arg:"" help:"Note text."`
}

func (c *NoteAddCmd) Run(ctx *Context) error {
	note, err := ctx.Store.AddNote(strings.Join(c.Content, " "))
	if err != nil {
		return err
	}

	fmt.Printf("Added note %s\n", note.ID)
	return nil
}

type NoteListCmd struct{}

func (c *NoteListCmd) Run(ctx *Context) error {
	notes, err := ctx.Store.GetNotes()
	if err != nil {
		return err
	}

	if len(notes) == 0 {
		fmt.Println("No notes yet.")
		return nil
	}

	for _, n := range notes {
		fmt.Printf("%s  %s\n  %s\n", n.ID, subStyle.Render(n.CreatedAt.Format("2006-01-02 15:04")), n.Content)
	}
	return nil
}

type NoteDeleteCmd struct {
	ID string `arg:"" help:"Note id to delete."`
}

func (c *NoteDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.DeleteNote(c.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted note %s\n", c.ID)
	return nil
}
