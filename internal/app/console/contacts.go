package console

import (
	"context"
	"time"

	"github.com/bobprince4u/admin/internal/domain/models"
)

// UpdateContactStatus changes one contact's status. The collection entry,
// the displayed contact and the stats change together or not at all. When
// the backend echoes the record it replaces the entry; otherwise the entry
// keeps its fields with the new status and a fresh lastUpdated. A contact
// that is neither held nor echoed yields ErrContactNotFound.
func (c *Controller) UpdateContactStatus(ctx context.Context, id string, status models.ContactStatus) (models.Contact, error) {
	const op, res = "update", "contact status"
	if !status.Valid() {
		return models.Contact{}, &MutationError{Op: op, Resource: res, Err: ErrInvalidStatus}
	}
	token, err := c.begin(op, res)
	if err != nil {
		return models.Contact{}, err
	}

	server, echoed, err := c.gw.Contacts.UpdateStatus(ctx, token, id, status)
	if err != nil {
		return models.Contact{}, c.fail(op, res, err)
	}

	var (
		updated models.Contact
		missing bool
	)
	err = c.commit(op, res, func() {
		current, found := findByKey(c.contacts, id, models.Contact.Key)
		switch {
		case echoed:
			updated = server
			updated.ID = id
		case found:
			updated = current
			updated.Status = status
			updated.LastUpdated = c.now().UTC().Format(time.RFC3339)
		default:
			missing = true
			return
		}
		c.contacts, _ = replaceByKey(c.contacts, id, models.Contact.Key, updated)
		c.recompute()
	})
	if err != nil {
		return models.Contact{}, err
	}
	if missing {
		return models.Contact{}, &MutationError{Op: op, Resource: res, Err: ErrContactNotFound}
	}
	return updated, nil
}
