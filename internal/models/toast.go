package models

type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastInfo    ToastLevel = "info"
	ToastWarning ToastLevel = "warning"
	ToastDanger  ToastLevel = "danger"
)

// Toast is the one-shot status message carried across the POST/redirect
// boundary and shown once on the next render.
type Toast struct {
	Level   ToastLevel `json:"type"`
	Message string     `json:"msg"`
}
