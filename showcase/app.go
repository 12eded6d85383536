// Package showcase is a small end-to-end demo of the toolkit: a contact
// list rendered into an in-memory document, with model-driven updates,
// pub/sub notifications, and a full teardown at the end.
package showcase

import (
	"fmt"
	"io"

	"github.com/go-vista/vista/pkg/dom"
	"github.com/go-vista/vista/pkg/events"
	"github.com/go-vista/vista/pkg/mediator"
	"github.com/go-vista/vista/pkg/view"
)

// App wires the demo together. Every run gets its own mediator and
// document so repeated runs are independent.
type App struct {
	Name string

	med  *mediator.Mediator
	body *dom.Element
	list *view.View

	contacts *events.Collection
	selected *events.Model
}

// NewApp builds the demo tree without rendering it.
func NewApp(name string) *App {
	return &App{
		Name: name,
		med:  mediator.New(),
		body: dom.NewElement("body"),
	}
}

// Run renders the app, plays through a few interactions, then disposes
// everything and reports what was released.
func (a *App) Run(w io.Writer) error {
	ada := events.NewModel(map[string]any{"name": "Ada Lovelace", "email": "ada@example.com"})
	grace := events.NewModel(map[string]any{"name": "Grace Hopper", "email": "grace@example.com"})
	a.contacts = events.NewCollection(ada, grace)
	a.selected = ada

	list, err := newContactList(a.Name, a.contacts, a.med, a.body)
	if err != nil {
		return err
	}
	a.list = list

	card, err := newContactCard(a.selected, a.med)
	if err != nil {
		return err
	}
	if err := list.Attach("card", card); err != nil {
		return err
	}
	if err := card.Render(); err != nil {
		return err
	}
	if detail := list.Root().Find(".detail"); detail != nil {
		detail.AppendChild(card.Root())
	}
	fmt.Fprintf(w, "== initial render ==\n%s\n\n", a.body.InnerHTML())

	// One-way binding: a model change lands in the card's DOM without a
	// re-render.
	a.selected.Set("email", "countess@example.com")
	fmt.Fprintf(w, "== after model change ==\n%s\n\n", a.body.InnerHTML())

	// Bus traffic: the list watches for new contacts published by
	// anyone on the mediator.
	a.med.Publish(topicContactAdded, events.NewModel(map[string]any{
		"name": "Edsger Dijkstra", "email": "edsger@example.com",
	}))
	if err := list.Render(); err != nil {
		return err
	}
	// Re-rendering the list rebuilt the detail slot, so the card's root
	// has to be placed again.
	if detail := list.Root().Find(".detail"); detail != nil {
		detail.AppendChild(card.Root())
	}
	fmt.Fprintf(w, "== after pub/sub add ==\n%s\n\n", a.body.InnerHTML())

	if err := list.Dispose(); err != nil {
		return err
	}
	fmt.Fprintf(w, "== after dispose ==\n")
	fmt.Fprintf(w, "document children: %d\n", len(a.body.ChildElements()))
	fmt.Fprintf(w, "list state: %s, card state: %s\n", list.State(), card.State())
	fmt.Fprintf(w, "model listeners remaining: %d\n",
		a.selected.ListenerCount(events.ChangeEvent("email"))+
			a.selected.ListenerCount(events.EventDestroy))
	return nil
}
