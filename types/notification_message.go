package types

type NotificationMessage struct {
	Event string   `json:"event"`
	Ids   []string `json:"ids"`
}
