package ports

import "context"

// HospitalLocker serializa el recálculo del rating de un mismo hospital.
// unlock debe llamarse siempre, incluso si la sección crítica falla.
type HospitalLocker interface {
	Lock(ctx context.Context, hospitalID string) (unlock func(), err error)
}
