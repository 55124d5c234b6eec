package core

const (
	FerpyName      = "Doctor Ferpy"
	FerpyVersion   = "0.9.4"
	DefaultPatient = "Paciente"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is one entry of the dialogue history. Providers own its meaning;
// the rest of the robot only round-trips it.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Image   *Image `json:"-"`
}

type History []Message

type Image struct {
	Data     []byte
	MIMEType string
}

func (i *Image) Empty() bool {
	return i == nil || len(i.Data) == 0
}

// DisplayState mirrors the face animation shown on the robot screen.
type DisplayState string

const (
	DisplayBoot       DisplayState = "boot"
	DisplayLoading    DisplayState = "loading"
	DisplayLine       DisplayState = "line"
	DisplayStationary DisplayState = "stationary"
)
