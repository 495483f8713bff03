package api

import (
	"context"
	"net/http"

	"saglikhep/pkg/domain"
)

type doctorEnvelope struct {
	Doctor domain.PendingDoctor `json:"doctor"`
}

type doctorListEnvelope struct {
	Doctors    []domain.PendingDoctor `json:"doctors"`
	Pagination domain.Pagination      `json:"pagination"`
}

// ListPendingDoctors fetches a page of expert applications.
func (c *Client) ListPendingDoctors(ctx context.Context, f domain.Filters) ([]domain.PendingDoctor, domain.Pagination, error) {
	var resp doctorListEnvelope
	if err := c.doJSON(ctx, http.MethodGet, "/admin/doctors/pending", queryValues(f, nil), nil, &resp); err != nil {
		return nil, domain.Pagination{}, err
	}
	return resp.Doctors, resp.Pagination, nil
}

// ApproveDoctor grants an applicant the doctor role.
func (c *Client) ApproveDoctor(ctx context.Context, id string) (domain.PendingDoctor, error) {
	var resp doctorEnvelope
	if err := c.doJSON(ctx, http.MethodPut, "/admin/doctors/"+id+"/approve", nil, nil, &resp); err != nil {
		return domain.PendingDoctor{}, err
	}
	return resp.Doctor, nil
}

// RejectDoctor declines an application with an optional reason.
func (c *Client) RejectDoctor(ctx context.Context, id, reason string) (domain.PendingDoctor, error) {
	var payload any
	if reason != "" {
		payload = map[string]string{"reason": reason}
	}
	var resp doctorEnvelope
	if err := c.doJSON(ctx, http.MethodPut, "/admin/doctors/"+id+"/reject", nil, payload, &resp); err != nil {
		return domain.PendingDoctor{}, err
	}
	return resp.Doctor, nil
}
