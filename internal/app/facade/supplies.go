package facade

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/EquiStack/barn_client/internal/app/domain/supply"
	"github.com/EquiStack/barn_client/internal/envelope"
)

const (
	suppliesPath = "/api/v1/supplies"
	receiptPath  = suppliesPath + "/transactions/process-receipt"
)

// ListSupplies returns the supply collection.
func (a *API) ListSupplies(ctx context.Context, opts supply.ListOptions) envelope.Envelope[[]supply.Supply] {
	q := a.orgQuery()
	if opts.ActiveOnly {
		q.Set("active_only", "true")
	}
	return envelope.As[[]supply.Supply](a.gw.Do(ctx, http.MethodGet, suppliesPath+"/", q, nil))
}

// GetSupply returns a single supply by id.
func (a *API) GetSupply(ctx context.Context, id int64) envelope.Envelope[supply.Supply] {
	return envelope.As[supply.Supply](a.gw.Do(ctx, http.MethodGet, supplyPath(id), a.orgQuery(), nil))
}

// CreateSupply adds a supply item to the inventory.
func (a *API) CreateSupply(ctx context.Context, req supply.CreateRequest) envelope.Envelope[supply.Supply] {
	payload := struct {
		supply.CreateRequest
		OrganizationID string `json:"organization_id"`
	}{req, a.orgID}

	body, err := json.Marshal(payload)
	if err != nil {
		return envelope.Fail[supply.Supply]("encode request: " + err.Error())
	}
	return envelope.As[supply.Supply](a.gw.Do(ctx, http.MethodPost, suppliesPath+"/", nil, body))
}

// UpdateSupply applies a partial update; derived stock flags are recomputed
// by the backend, never trusted from the caller.
func (a *API) UpdateSupply(ctx context.Context, id int64, upd supply.UpdateRequest) envelope.Envelope[supply.Supply] {
	body, err := json.Marshal(upd)
	if err != nil {
		return envelope.Fail[supply.Supply]("encode request: " + err.Error())
	}
	return envelope.As[supply.Supply](a.gw.Do(ctx, http.MethodPut, supplyPath(id), a.orgQuery(), body))
}

// DeleteSupply removes a supply by id.
func (a *API) DeleteSupply(ctx context.Context, id int64) envelope.Raw {
	return a.gw.Do(ctx, http.MethodDelete, supplyPath(id), a.orgQuery(), nil)
}

// SupplyDashboard returns the read-only inventory projection, recomputed by
// the backend on every call.
func (a *API) SupplyDashboard(ctx context.Context) envelope.Envelope[supply.Dashboard] {
	return envelope.As[supply.Dashboard](a.gw.Do(ctx, http.MethodGet, suppliesPath+"/dashboard", a.orgQuery(), nil))
}

// ProcessReceipt uploads a receipt image as multipart form data. The
// multipart writer supplies the content type so the boundary survives.
func (a *API) ProcessReceipt(ctx context.Context, filename string, image io.Reader) envelope.Envelope[supply.ReceiptResult] {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return envelope.Fail[supply.ReceiptResult]("build upload: " + err.Error())
	}
	if _, err := io.Copy(part, image); err != nil {
		return envelope.Fail[supply.ReceiptResult]("read receipt image: " + err.Error())
	}
	if err := w.Close(); err != nil {
		return envelope.Fail[supply.ReceiptResult]("build upload: " + err.Error())
	}
	return envelope.As[supply.ReceiptResult](a.gw.DoUpload(ctx, receiptPath, a.orgQuery(), buf.Bytes(), w.FormDataContentType()))
}

func supplyPath(id int64) string {
	return suppliesPath + "/" + strconv.FormatInt(id, 10)
}
