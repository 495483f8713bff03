package validate

import (
	"testing"
	"time"
)

func validForm() EventForm {
	start := time.Date(2026, 10, 12, 14, 0, 0, 0, time.UTC)
	return EventForm{
		Title:       "Sağlıklı Beslenme Semineri",
		Description: "Uzman diyetisyenler eşliğinde sağlıklı beslenme alışkanlıkları üzerine seminer.",
		Location:    "İstanbul Kongre Merkezi",
		Category:    "beslenme",
		Date:        start,
		Capacity:    150,
	}
}

func findField(t *testing.T, errs FieldErrors, field string) FieldError {
	t.Helper()
	for _, fe := range errs {
		if fe.Field == field {
			return fe
		}
	}
	t.Fatalf("no error for field %q in %v", field, errs)
	return FieldError{}
}

func TestEventValidFormPasses(t *testing.T) {
	if errs := Event(validForm()); errs != nil {
		t.Fatalf("valid form rejected: %v", errs)
	}
}

func TestEventRequiredFields(t *testing.T) {
	errs := Event(EventForm{})
	for _, field := range []string{"title", "description", "location", "category", "date"} {
		fe := findField(t, errs, field)
		if fe.Message != "Bu alan zorunludur." {
			t.Errorf("%s message = %q", field, fe.Message)
		}
	}
}

func TestEventLengthBounds(t *testing.T) {
	form := validForm()
	form.Title = "Kısa"
	form.Description = "Çok kısa açıklama."
	errs := Event(form)

	if fe := findField(t, errs, "title"); fe.Message != "En az 5 karakter olmalıdır." {
		t.Errorf("title message = %q", fe.Message)
	}
	if fe := findField(t, errs, "description"); fe.Message != "En az 20 karakter olmalıdır." {
		t.Errorf("description message = %q", fe.Message)
	}
}

func TestEventCapacityBounds(t *testing.T) {
	form := validForm()
	form.Capacity = -1
	if fe := findField(t, Event(form), "capacity"); fe.Message != "En az 0 olmalıdır." {
		t.Errorf("capacity message = %q", fe.Message)
	}

	form.Capacity = 100001
	if fe := findField(t, Event(form), "capacity"); fe.Message != "En fazla 100000 olmalıdır." {
		t.Errorf("capacity message = %q", fe.Message)
	}
}

func TestEventEndDateOrdering(t *testing.T) {
	form := validForm()
	before := form.Date.Add(-time.Hour)
	form.EndDate = &before

	fe := findField(t, Event(form), "endDate")
	if fe.Message != "Bitiş tarihi başlangıç tarihinden önce olamaz." {
		t.Errorf("endDate message = %q", fe.Message)
	}

	after := form.Date.Add(2 * time.Hour)
	form.EndDate = &after
	if errs := Event(form); errs != nil {
		t.Fatalf("later end date rejected: %v", errs)
	}
}
