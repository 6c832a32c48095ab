package console

import (
	"context"

	"github.com/bobprince4u/admin/internal/app/system/apiclient"
	"github.com/bobprince4u/admin/internal/domain/models"
)

// Create operations prepend the server's record. Update operations replace
// the entry matching the target id with the server's record. Delete
// operations remove the matching entry; an unknown id leaves the collection
// as it was. No collection changes unless the backend confirms.

/*─────────────────────────────────────────────────────────────────────────────*
| Projects                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (c *Controller) AddProject(ctx context.Context, p models.Project) (models.Project, error) {
	const op, res = "create", "project"
	token, err := c.begin(op, res)
	if err != nil {
		return models.Project{}, err
	}
	created, err := c.gw.Projects.Create(ctx, token, p)
	if err != nil {
		return models.Project{}, c.fail(op, res, err)
	}
	if created.ID == "" {
		return models.Project{}, c.fail(op, res, apiclient.ErrNoRecord)
	}
	return created, c.commit(op, res, func() {
		c.projects = prepend(c.projects, created)
		c.recompute()
	})
}

func (c *Controller) UpdateProject(ctx context.Context, id string, p models.Project) (models.Project, error) {
	const op, res = "update", "project"
	token, err := c.begin(op, res)
	if err != nil {
		return models.Project{}, err
	}
	updated, err := c.gw.Projects.Update(ctx, token, id, p)
	if err != nil {
		return models.Project{}, c.fail(op, res, err)
	}
	if updated.ID == "" {
		updated.ID = id
	}
	return updated, c.commit(op, res, func() {
		c.projects, _ = replaceByKey(c.projects, id, models.Project.Key, updated)
		c.recompute()
	})
}

func (c *Controller) DeleteProject(ctx context.Context, id string) error {
	const op, res = "delete", "project"
	token, err := c.begin(op, res)
	if err != nil {
		return err
	}
	if err := c.gw.Projects.Delete(ctx, token, id); err != nil {
		return c.fail(op, res, err)
	}
	return c.commit(op, res, func() {
		c.projects, _ = removeByKey(c.projects, id, models.Project.Key)
		c.recompute()
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Services                                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// AddService derives the slug from the title before sending.
func (c *Controller) AddService(ctx context.Context, s models.Service) (models.Service, error) {
	const op, res = "create", "service"
	token, err := c.begin(op, res)
	if err != nil {
		return models.Service{}, err
	}
	s.Slug = models.Slugify(s.Title)
	created, err := c.gw.Services.Create(ctx, token, s)
	if err != nil {
		return models.Service{}, c.fail(op, res, err)
	}
	if created.ID == 0 {
		return models.Service{}, c.fail(op, res, apiclient.ErrNoRecord)
	}
	return created, c.commit(op, res, func() {
		c.services = prepend(c.services, created)
	})
}

// UpdateService derives the slug from the title before sending.
func (c *Controller) UpdateService(ctx context.Context, id models.ServiceID, s models.Service) (models.Service, error) {
	const op, res = "update", "service"
	token, err := c.begin(op, res)
	if err != nil {
		return models.Service{}, err
	}
	s.Slug = models.Slugify(s.Title)
	updated, err := c.gw.Services.Update(ctx, token, id, s)
	if err != nil {
		return models.Service{}, c.fail(op, res, err)
	}
	if updated.ID == 0 {
		updated.ID = id
	}
	return updated, c.commit(op, res, func() {
		c.services, _ = replaceByKey(c.services, id, models.Service.Key, updated)
	})
}

func (c *Controller) DeleteService(ctx context.Context, id models.ServiceID) error {
	const op, res = "delete", "service"
	token, err := c.begin(op, res)
	if err != nil {
		return err
	}
	if err := c.gw.Services.Delete(ctx, token, id); err != nil {
		return c.fail(op, res, err)
	}
	return c.commit(op, res, func() {
		c.services, _ = removeByKey(c.services, id, models.Service.Key)
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| Testimonials                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// AddTestimonial clamps the rating into range before sending.
func (c *Controller) AddTestimonial(ctx context.Context, t models.Testimonial) (models.Testimonial, error) {
	const op, res = "create", "testimonial"
	token, err := c.begin(op, res)
	if err != nil {
		return models.Testimonial{}, err
	}
	t.Rating = models.ClampRating(t.Rating)
	created, err := c.gw.Testimonials.Create(ctx, token, t)
	if err != nil {
		return models.Testimonial{}, c.fail(op, res, err)
	}
	if created.ID == "" {
		return models.Testimonial{}, c.fail(op, res, apiclient.ErrNoRecord)
	}
	return created, c.commit(op, res, func() {
		c.testimonials = prepend(c.testimonials, created)
	})
}

func (c *Controller) UpdateTestimonial(ctx context.Context, id string, t models.Testimonial) (models.Testimonial, error) {
	const op, res = "update", "testimonial"
	token, err := c.begin(op, res)
	if err != nil {
		return models.Testimonial{}, err
	}
	t.Rating = models.ClampRating(t.Rating)
	updated, err := c.gw.Testimonials.Update(ctx, token, id, t)
	if err != nil {
		return models.Testimonial{}, c.fail(op, res, err)
	}
	if updated.ID == "" {
		updated.ID = id
	}
	return updated, c.commit(op, res, func() {
		c.testimonials, _ = replaceByKey(c.testimonials, id, models.Testimonial.Key, updated)
	})
}

func (c *Controller) DeleteTestimonial(ctx context.Context, id string) error {
	const op, res = "delete", "testimonial"
	token, err := c.begin(op, res)
	if err != nil {
		return err
	}
	if err := c.gw.Testimonials.Delete(ctx, token, id); err != nil {
		return c.fail(op, res, err)
	}
	return c.commit(op, res, func() {
		c.testimonials, _ = removeByKey(c.testimonials, id, models.Testimonial.Key)
	})
}
