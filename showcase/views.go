package showcase

import (
	"github.com/go-vista/vista/pkg/dom"
	"github.com/go-vista/vista/pkg/events"
	"github.com/go-vista/vista/pkg/mediator"
	"github.com/go-vista/vista/pkg/view"
)

const topicContactAdded = "contacts:added"

const listTemplate = `<h1>{{.title}}</h1>
<ul class="contacts">{{range .items}}<li>{{.name}}</li>{{end}}</ul>
<section class="detail"></section>`

const cardTemplate = `<h2 class="card-name">{{.name}}</h2>
<input class="card-email" type="text" value="{{.email}}">`

// newContactList builds the root view: a heading, one <li> per contact,
// and a detail slot for the selected card. It subscribes to the mediator
// for contacts added elsewhere in the app.
func newContactList(title string, contacts *events.Collection, med *mediator.Mediator, body *dom.Element) (*view.View, error) {
	return view.Create(view.Options{
		Tag:        "main",
		ClassName:  "contact-list",
		Container:  body,
		AutoRender: true,
		Template:   listTemplate,
		Collection: contacts,
		Mediator:   med,
		TemplateData: func() map[string]any {
			items := make([]map[string]any, 0, contacts.Len())
			for _, m := range contacts.Models() {
				items = append(items, m.Attributes())
			}
			return map[string]any{"title": title, "items": items}
		},
		OnInitialize: []view.Hook{
			func(v *view.View) error {
				return v.Subscribe(topicContactAdded, func(data any) {
					if m, ok := data.(*events.Model); ok {
						contacts.Add(m)
					}
				})
			},
		},
	})
}

// newContactCard builds the detail view for one contact. Its email field
// tracks the model attribute of the same name.
func newContactCard(contact *events.Model, med *mediator.Mediator) (*view.View, error) {
	return view.Create(view.Options{
		ClassName: "contact-card",
		Template:  cardTemplate,
		Model:     contact,
		Mediator:  med,
		OnInitialize: []view.Hook{
			func(v *view.View) error {
				return v.Pass("email", ".card-email")
			},
		},
	})
}
