package viewmodel

// CardLayer holds the CSS-ready visual parameters for one card layer. Also
// serialized to JSON for the WebSocket snapshot push.
type CardLayer struct {
	ID              string  `json:"id"`
	ImageURL        string  `json:"imageUrl"`
	Alt             string  `json:"alt"`
	Rotation        float64 `json:"rotation"`
	Scale           float64 `json:"scale"`
	TranslateY      float64 `json:"translateY"`
	Opacity         float64 `json:"opacity"`
	Blur            float64 `json:"blur"`
	ZIndex          int     `json:"zIndex"`
	TransformOrigin string  `json:"transformOrigin"`
	IsFront         bool    `json:"isFront"`
}

// StackWidget holds data for the widget fragment: card layers plus the
// interaction flags and tuning the client-side collaborators need.
type StackWidget struct {
	StackID       string      `json:"stackId"`
	Cards         []CardLayer `json:"cards"`
	ZoomedImage   string      `json:"zoomedImage,omitempty"`
	Paused        bool        `json:"paused"`
	Mobile        bool        `json:"mobile"`
	DragEnabled   bool        `json:"dragEnabled"`
	ClickDismiss  bool        `json:"clickDismiss"`
	SensitivityPx float64     `json:"sensitivityPx"`
	Stiffness     float64     `json:"stiffness"`
	Damping       float64     `json:"damping"`
}

// StackPage holds data for the widget page template.
type StackPage struct {
	Title    string
	StackID  string
	ShareURL string
	Widget   StackWidget
}

// OptionField is one knob on the create form, pre-filled with a default.
type OptionField struct {
	Name  string
	Label string
	Value string
}

// HomePage holds data for the create-widget form.
type HomePage struct {
	Title  string
	Fields []OptionField
}
