// Package memory implementa los repositorios en memoria (STORAGE_DRIVER=memory).
// Se usa en desarrollo local y como doble de prueba de los casos de uso y del router.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/bloodconnect-api/internal/application/ports"
	"github.com/jhoicas/bloodconnect-api/internal/domain"
	"github.com/jhoicas/bloodconnect-api/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

// Store guarda todas las tablas bajo un único mutex. Una transacción retiene el mutex
// durante todo fn y restaura la copia previa si fn falla.
type Store struct {
	mu   sync.Mutex
	data *dataset
}

type dataset struct {
	seq       int64
	order     map[string]int64
	users     map[string]entity.User
	patients  map[string]entity.Patient
	donors    map[string]entity.Donor
	hospitals map[string]entity.Hospital
	admins    map[string]entity.Admin
	reviews   map[string]entity.Review
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

func newDataset() *dataset {
	return &dataset{
		order:     map[string]int64{},
		users:     map[string]entity.User{},
		patients:  map[string]entity.Patient{},
		donors:    map[string]entity.Donor{},
		hospitals: map[string]entity.Hospital{},
		admins:    map[string]entity.Admin{},
		reviews:   map[string]entity.Review{},
	}
}

func (d *dataset) clone() *dataset {
	c := newDataset()
	c.seq = d.seq
	for k, v := range d.order {
		c.order[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.patients {
		c.patients[k] = copyPatient(v)
	}
	for k, v := range d.donors {
		c.donors[k] = copyDonor(v)
	}
	for k, v := range d.hospitals {
		c.hospitals[k] = copyHospital(v)
	}
	for k, v := range d.admins {
		c.admins[k] = copyAdmin(v)
	}
	for k, v := range d.reviews {
		c.reviews[k] = v
	}
	return c
}

// track asigna el número de inserción usado para desempatar fechas iguales.
func (d *dataset) track(id string) {
	d.seq++
	d.order[id] = d.seq
}

// newer ordena por CreatedAt descendente y luego por orden de inserción descendente.
func (d *dataset) newer(idA string, a time.Time, idB string, b time.Time) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return d.order[idA] > d.order[idB]
}

// Stores devuelve los repositorios que toman el mutex en cada llamada.
func (s *Store) Stores() ports.Stores {
	return s.stores(false)
}

func (s *Store) stores(inTx bool) ports.Stores {
	h := handle{s: s, inTx: inTx}
	return ports.Stores{
		Users:     &UserRepo{h},
		Patients:  &PatientRepo{h},
		Donors:    &DonorRepo{h},
		Hospitals: &HospitalRepo{h},
		Admins:    &AdminRepo{h},
		Reviews:   &ReviewRepo{h},
	}
}

// Run implementa ports.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(st ports.Stores) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	snapshot := s.data.clone()
	if err := fn(s.stores(true)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// handle da acceso al dataset; fuera de una tx toma el mutex.
type handle struct {
	s    *Store
	inTx bool
}

func (h handle) do(fn func(d *dataset) error) error {
	if !h.inTx {
		h.s.mu.Lock()
		defer h.s.mu.Unlock()
	}
	return fn(h.s.data)
}

func conflict(what string) error {
	return fmt.Errorf("%s: %w", what, domain.ErrConflict)
}

func sortNewest[T any](d *dataset, items []T, key func(T) (string, time.Time)) {
	sort.SliceStable(items, func(i, j int) bool {
		idA, a := key(items[i])
		idB, b := key(items[j])
		return d.newer(idA, a, idB, b)
	})
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func copyPatient(p entity.Patient) entity.Patient {
	if p.Age != nil {
		age := *p.Age
		p.Age = &age
	}
	return p
}

func copyDonor(d entity.Donor) entity.Donor {
	if d.LastDonationDate != nil {
		t := *d.LastDonationDate
		d.LastDonationDate = &t
	}
	d.HealthConditions = append([]string(nil), d.HealthConditions...)
	return d
}

func copyHospital(h entity.Hospital) entity.Hospital {
	h.AvailableBloodUnits = append([]entity.BloodUnit(nil), h.AvailableBloodUnits...)
	return h
}

func copyAdmin(a entity.Admin) entity.Admin {
	a.Permissions = append([]string(nil), a.Permissions...)
	return a
}
