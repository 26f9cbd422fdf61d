package store

import (
	"sync"

	"github.com/propdash/portfolio-service/internal/models"
)

// Store is the in-memory record store. It is built once at startup and
// handed to every consumer; all reads return copies so callers can never
// mutate stored records except through the setters below.
type Store struct {
	mu            sync.RWMutex
	properties    []models.Property
	tenants       []models.Tenant
	notifications []models.Notification
	transactions  []models.Transaction
}

// New copies its inputs. Tenant totals are recomputed from their leases.
func New(
	props []models.Property,
	tenants []models.Tenant,
	notifications []models.Notification,
	transactions []models.Transaction,
) *Store {
	s := &Store{
		properties:    make([]models.Property, 0, len(props)),
		tenants:       make([]models.Tenant, 0, len(tenants)),
		notifications: make([]models.Notification, 0, len(notifications)),
		transactions:  append([]models.Transaction(nil), transactions...),
	}
	for _, p := range props {
		s.properties = append(s.properties, p.Clone())
	}
	for _, t := range tenants {
		c := t.Clone()
		c.RecomputeTotals()
		s.tenants = append(s.tenants, c)
	}
	for _, n := range notifications {
		s.notifications = append(s.notifications, n.Clone())
	}
	return s
}

func (s *Store) Properties() []models.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Property, len(s.properties))
	for i, p := range s.properties {
		out[i] = p.Clone()
	}
	return out
}

func (s *Store) Tenants() []models.Tenant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Tenant, len(s.tenants))
	for i, t := range s.tenants {
		out[i] = t.Clone()
	}
	return out
}

func (s *Store) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Transaction(nil), s.transactions...)
}

// Notifications returns the seed notification set. Live read/unread state
// belongs to the notification router.
func (s *Store) Notifications() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Notification, len(s.notifications))
	for i, n := range s.notifications {
		out[i] = n.Clone()
	}
	return out
}

func (s *Store) PropertyByID(id string) (*models.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.properties {
		if p.ID == id {
			c := p.Clone()
			return &c, true
		}
	}
	return nil, false
}

// SetPropertyLocation overwrites the coordinates of a property. nil clears
// them. Returns false when the id is unknown.
func (s *Store) SetPropertyLocation(id string, lat, lng *float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.properties {
		if s.properties[i].ID != id {
			continue
		}
		s.properties[i].Location.Lat = copyFloat(lat)
		s.properties[i].Location.Lng = copyFloat(lng)
		return true
	}
	return false
}

func (s *Store) SetPropertyTimeZone(id, tz string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.properties {
		if s.properties[i].ID == id {
			s.properties[i].Location.TimeZone = tz
			return true
		}
	}
	return false
}

// ReplaceTenants swaps in tenants with refreshed statuses. Totals are
// recomputed, never taken from the caller.
func (s *Store) ReplaceTenants(tenants []models.Tenant) {
	next := make([]models.Tenant, 0, len(tenants))
	for _, t := range tenants {
		c := t.Clone()
		c.RecomputeTotals()
		next = append(next, c)
	}
	s.mu.Lock()
	s.tenants = next
	s.mu.Unlock()
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
