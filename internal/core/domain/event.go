package domain

// Post mutation actions broadcast to connected feed clients.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// PostEvent is the payload published on every successful post mutation.
// Delivery is best-effort and must never block the originating request.
type PostEvent struct {
	Action string `json:"action"`
	Post   Post   `json:"post"`
}
