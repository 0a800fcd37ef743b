package sections

import (
	"context"

	"github.com/ukaji3/formbook-go/pkg/formbook/formula"
	"github.com/ukaji3/formbook-go/pkg/formbook/lookup"
	"github.com/ukaji3/formbook-go/pkg/formbook/messages"
	"github.com/ukaji3/formbook-go/pkg/formbook/models"
	"github.com/ukaji3/formbook-go/pkg/formbook/section"
)

const contactsGroup = "additionalContacts"

var primaryContactKeys = []string{
	"pcPosition", "pcFirstName", "pcLastName", "pcEmail", "pcPhone", "pcInstitution",
}

// PIAndContact returns section A: the principal investigator, the primary
// contact and any additional contacts.
func PIAndContact() *section.Section {
	return &section.Section{
		ID:          SectionA,
		Name:        PIAndContactSheet,
		HeaderColor: "D9EAD3",
		Columns: section.Schema{
			{Key: "piFirstName", Header: "PI First Name", Width: 20},
			{Key: "piLastName", Header: "PI Last Name", Width: 20},
			{Key: "piPosition", Header: "PI Position", Width: 25},
			{Key: "piEmail", Header: "PI Email", Width: 30},
			{Key: "piORCID", Header: "PI ORCID", Width: 22, Annotation: "Format: 0000-0000-0000-0000"},
			{Key: "piInstitution", Header: "PI Institution", Width: 35, Annotation: "Select from the list or enter a new institution name."},
			{Key: "piInstitutionID", Header: "PI Institution ID", Width: 38, Locked: true},
			{Key: "piAddress", Header: "PI Institution Address", Width: 40},
			{Key: "piAsPrimaryContact", Header: "PI Is Primary Contact", Width: 20, Annotation: "Select Yes to use the PI as the primary contact."},
			{Key: "pcPosition", Header: "Primary Contact Position", Width: 25},
			{Key: "pcFirstName", Header: "Primary Contact First Name", Width: 20},
			{Key: "pcLastName", Header: "Primary Contact Last Name", Width: 20},
			{Key: "pcEmail", Header: "Primary Contact Email", Width: 30},
			{Key: "pcPhone", Header: "Primary Contact Phone", Width: 18},
			{Key: "pcInstitution", Header: "Primary Contact Institution", Width: 35},
			{Key: "pcInstitutionID", Header: "Primary Contact Institution ID", Width: 38, Locked: true},
			{Key: "acPosition", Header: "Additional Contact Position", Width: 25, Group: contactsGroup},
			{Key: "acFirstName", Header: "Additional Contact First Name", Width: 20, Group: contactsGroup},
			{Key: "acLastName", Header: "Additional Contact Last Name", Width: 20, Group: contactsGroup},
			{Key: "acEmail", Header: "Additional Contact Email", Width: 30, Group: contactsGroup},
			{Key: "acPhone", Header: "Additional Contact Phone", Width: 18, Group: contactsGroup},
			{Key: "acInstitution", Header: "Additional Contact Institution", Width: 35, Group: contactsGroup},
			{Key: "acInstitutionID", Header: "Additional Contact Institution ID", Width: 38, Locked: true, Group: contactsGroup},
		},
		Limits: section.Limits{
			"piFirstName":   50,
			"piLastName":    50,
			"piPosition":    100,
			"piEmail":       254,
			"piInstitution": 100,
			"piAddress":     200,
			"pcPosition":    100,
			"pcFirstName":   50,
			"pcLastName":    50,
			"pcEmail":       254,
			"pcPhone":       25,
			"pcInstitution": 100,
			"acPosition":    100,
			"acFirstName":   50,
			"acLastName":    50,
			"acEmail":       254,
			"acPhone":       25,
			"acInstitution": 100,
		},
		Write:     writePIAndContact,
		Validate:  validatePIAndContact,
		MapValues: mapPIAndContact,
	}
}

func writePIAndContact(_ context.Context, d *section.Deps, ws *section.Worksheet) ([]int, error) {
	data := d.Data
	row := section.FirstDataRow

	ws.Set("piFirstName", row, data.PI.FirstName)
	ws.Set("piLastName", row, data.PI.LastName)
	ws.Set("piPosition", row, data.PI.Position)
	ws.Set("piEmail", row, data.PI.Email)
	ws.Set("piORCID", row, data.PI.ORCID)
	ws.Set("piInstitution", row, data.PI.Institution)
	ws.Set("piAddress", row, data.PI.Address)
	ws.SetBool("piAsPrimaryContact", row, data.PIAsPrimaryContact)

	if pc := data.PrimaryContact; pc != nil && !data.PIAsPrimaryContact {
		ws.Set("pcPosition", row, pc.Position)
		ws.Set("pcFirstName", row, pc.FirstName)
		ws.Set("pcLastName", row, pc.LastName)
		ws.Set("pcEmail", row, pc.Email)
		ws.Set("pcPhone", row, pc.Phone)
		ws.Set("pcInstitution", row, pc.Institution)
	}

	ws.Records(contactsGroup, len(data.AdditionalContacts), func(i, row int) {
		c := data.AdditionalContacts[i]
		ws.Set("acPosition", row, c.Position)
		ws.Set("acFirstName", row, c.FirstName)
		ws.Set("acLastName", row, c.LastName)
		ws.Set("acEmail", row, c.Email)
		ws.Set("acPhone", row, c.Phone)
		ws.Set("acInstitution", row, c.Institution)
	})

	return ws.WrittenRows(), nil
}

func validatePIAndContact(ctx context.Context, d *section.Deps, ws *section.Worksheet) error {
	emails(ws, "piEmail", "pcEmail", "acEmail")
	ws.Check("piORCID", formula.ORCID, messages.Get(messages.InvalidORCID))
	yesNo(ws, "piAsPrimaryContact")

	if err := lookupList(ctx, d, ws, lookup.Institutions, lookup.InstitutionNameColumn, "institution",
		"piInstitution", "pcInstitution", "acInstitution"); err != nil {
		return err
	}
	for _, prefix := range []string{"pi", "pc", "ac"} {
		if err := derive(d, ws, lookup.Institutions, lookup.InstitutionNameColumn, lookup.InstitutionIDColumn,
			prefix+"Institution", prefix+"InstitutionID"); err != nil {
			return err
		}
	}

	ws.Disable(primaryContactKeys, func(int) string {
		return isYes(ws, "piAsPrimaryContact")
	}, messages.Get(messages.BlockedSameAsAbove, "PI Is Primary Contact"))
	return nil
}

func mapPIAndContact(v *section.Values, deps *section.MapDeps) *models.QuestionnaireData {
	out := &models.QuestionnaireData{}

	institution, institutionID := deps.Institution(v.Str("piInstitution"))
	out.PI = models.PI{
		FirstName:     v.Str("piFirstName"),
		LastName:      v.Str("piLastName"),
		Position:      v.Str("piPosition"),
		Email:         v.Str("piEmail"),
		ORCID:         v.Str("piORCID"),
		Institution:   institution,
		InstitutionID: institutionID,
		Address:       v.Str("piAddress"),
	}
	out.PIAsPrimaryContact = v.Bool("piAsPrimaryContact")

	if !out.PIAsPrimaryContact {
		pc := contactAt(v, deps, "pc", 0)
		if pc != (models.Contact{}) {
			out.PrimaryContact = &pc
		}
	}

	out.AdditionalContacts = section.Collect(v, contactsGroup, func(i int) models.Contact {
		return contactAt(v, deps, "ac", i)
	})
	return out
}

// contactAt reads the contact columns sharing prefix at record i.
func contactAt(v *section.Values, deps *section.MapDeps, prefix string, i int) models.Contact {
	institution, institutionID := deps.Institution(v.At(prefix+"Institution", i))
	return models.Contact{
		Position:      v.At(prefix+"Position", i),
		FirstName:     v.At(prefix+"FirstName", i),
		LastName:      v.At(prefix+"LastName", i),
		Email:         v.At(prefix+"Email", i),
		Phone:         v.At(prefix+"Phone", i),
		Institution:   institution,
		InstitutionID: institutionID,
	}
}
