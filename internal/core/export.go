package core

import (
	"encoding/json"
	"io"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/amistack/amistack/internal/models"
	"github.com/amistack/amistack/internal/store"
)

// TenantExport is the full portable snapshot of one tenant's CRM data.
type TenantExport struct {
	ExportedAt   time.Time               `json:"exported_at"`
	Contacts     []models.Contact        `json:"contacts"`
	Companies    []models.Company        `json:"companies"`
	Interactions []models.Interaction    `json:"interactions"`
	Tags         []models.Tag            `json:"tags"`
	Forms        []models.Form           `json:"forms"`
	Submissions  []models.FormSubmission `json:"submissions"`
}

// WriteTenantExport streams the tenant's data as zstd-compressed JSON.
func WriteTenantExport(st *store.Store, userID uint, w io.Writer) error {
	exp := TenantExport{ExportedAt: time.Now().UTC()}
	var err error

	if exp.Contacts, err = st.ListContacts(userID); err != nil {
		return err
	}
	if exp.Companies, err = st.ListCompanies(userID); err != nil {
		return err
	}
	if err = st.DB.Where("user_id = ?", userID).Find(&exp.Interactions).Error; err != nil {
		return err
	}
	if exp.Tags, err = st.ListTags(userID); err != nil {
		return err
	}
	if exp.Forms, err = st.ListForms(userID); err != nil {
		return err
	}
	for _, f := range exp.Forms {
		subs, err := st.ListSubmissions(userID, f.ID)
		if err != nil {
			return err
		}
		exp.Submissions = append(exp.Submissions, subs...)
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(enc).Encode(&exp); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
