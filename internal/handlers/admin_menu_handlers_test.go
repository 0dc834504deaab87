package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func multipartMenuItemRequest(t *testing.T, image []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for field, value := range map[string]string{
		"name":        "Dal Rice",
		"description": "Comfort classic",
		"meal_type":   "Lunch",
	} {
		if err := w.WriteField(field, value); err != nil {
			t.Fatalf("failed to write field %s: %v", field, err)
		}
	}
	if image != nil {
		part, err := w.CreateFormFile("image", "dal.jpg")
		if err != nil {
			t.Fatalf("failed to create image part: %v", err)
		}
		if _, err := part.Write(image); err != nil {
			t.Fatalf("failed to write image part: %v", err)
		}
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/menu-items", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

// The uploaded image is buffered and the multipart handle closed inside
// menuItemInput, so the content must still be fully readable afterwards.
func TestMenuItemInputBuffersUpload(t *testing.T) {
	image := []byte("jpeg bytes")
	e := echo.New()
	c := e.NewContext(multipartMenuItemRequest(t, image), httptest.NewRecorder())

	h := NewAdminMenuHandler(nil, nil, "")
	input, errMsg := h.menuItemInput(c)
	if errMsg != "" {
		t.Fatalf("menuItemInput returned error %q", errMsg)
	}
	if input.Name != "Dal Rice" || input.MealType != "Lunch" {
		t.Errorf("unexpected fields: %+v", input)
	}
	if input.Image == nil {
		t.Fatal("expected an image upload")
	}
	if input.Image.Field != "image" || input.Image.Filename != "dal.jpg" {
		t.Errorf("unexpected upload metadata: %+v", input.Image)
	}
	if _, ok := input.Image.Content.(*bytes.Reader); !ok {
		t.Errorf("upload content should be buffered, got %T", input.Image.Content)
	}
	got, err := io.ReadAll(input.Image.Content)
	if err != nil {
		t.Fatalf("failed to read buffered upload: %v", err)
	}
	if !bytes.Equal(got, image) {
		t.Errorf("buffered upload = %q; want %q", got, image)
	}
}

func TestMenuItemInputWithoutImage(t *testing.T) {
	e := echo.New()
	c := e.NewContext(multipartMenuItemRequest(t, nil), httptest.NewRecorder())

	h := NewAdminMenuHandler(nil, nil, "")
	input, errMsg := h.menuItemInput(c)
	if errMsg != "" {
		t.Fatalf("menuItemInput returned error %q", errMsg)
	}
	if input.Image != nil {
		t.Errorf("expected no upload, got %+v", input.Image)
	}
}
