package tools_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"testing"

	"image_table_api/gallery/gallerytest"
	"image_table_api/tools"
	"image_table_api/types"
)

func TestImageType(t *testing.T) {
	cases := map[string]string{
		"cat.png":        "png",
		"archive.tar.gz": "gz",
		"photo.JPEG":     "JPEG",
	}
	for name, want := range cases {
		got := tools.ImageType(name)
		if got == nil || *got != want {
			t.Errorf("ImageType(%q) = %v, want %q", name, got, want)
		}
	}

	for _, name := range []string{"README", "trailing."} {
		if got := tools.ImageType(name); got != nil {
			t.Errorf("ImageType(%q) = %q, want nil", name, *got)
		}
	}
}

func TestStoragePaths(t *testing.T) {
	if got := tools.UserPrefix("u1"); got != "images/u1/" {
		t.Errorf("UserPrefix() = %q", got)
	}
	if got := tools.ObjectPath("u1", "a.png"); got != "images/u1/a.png" {
		t.Errorf("ObjectPath() = %q", got)
	}
	if got := tools.ObjectName("images/u1/a.png"); got != "a.png" {
		t.Errorf("ObjectName() = %q", got)
	}
}

func TestDownloadUrl(t *testing.T) {
	got := tools.DownloadUrl("demo.appspot.com", "images/u1/my cat.png", "tok")
	want := "https://firebasestorage.googleapis.com/v0/b/demo.appspot.com/o/images%2Fu1%2Fmy%20cat.png?alt=media&token=tok"
	if got != want {
		t.Errorf("DownloadUrl() = %q, want %q", got, want)
	}
}

func TestFirstDownloadToken(t *testing.T) {
	if got := tools.FirstDownloadToken(map[string]string{"firebaseStorageDownloadTokens": "a,b"}); got != "a" {
		t.Errorf("expected first token, got %q", got)
	}
	if got := tools.FirstDownloadToken(nil); got != "" {
		t.Errorf("expected no token, got %q", got)
	}
}

func TestNewImageRowCreatorName(t *testing.T) {
	row := tools.NewImageRow(&types.User{UID: "u1", Email: "e@example.com"}, "a.png", "url")
	if row.Id != "a.png" || row.ImageTitle != "a.png" || row.ImageUrl != "url" {
		t.Errorf("unexpected row %+v", row)
	}
	if row.CreatorName == nil || *row.CreatorName != "e@example.com" {
		t.Errorf("expected email fallback, got %v", row.CreatorName)
	}

	row = tools.NewImageRow(&types.User{UID: "u1"}, "a.png", "url")
	if row.CreatorName != nil {
		t.Errorf("expected nil creator, got %q", *row.CreatorName)
	}
}

func TestDecodeImageInfoMissingKeys(t *testing.T) {
	if _, err := tools.DecodeImageInfo(map[string]interface{}{"name": "a.png"}); err == nil {
		t.Fatalf("expected an error for a file info without a file")
	}
}

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	return img
}

func TestCorrectImageOrientation(t *testing.T) {
	img := testImage()

	rotated := tools.CorrectImageOrientation(img, 6)
	if rotated.Bounds().Dx() != 2 || rotated.Bounds().Dy() != 4 {
		t.Errorf("orientation 6 should swap dimensions, got %v", rotated.Bounds())
	}

	if same := tools.CorrectImageOrientation(img, 1); same != img {
		t.Errorf("orientation 1 should return the image untouched")
	}
}

func TestNormalizeJpegOrientationPassThrough(t *testing.T) {
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, testImage()); err != nil {
		t.Fatalf("png.Encode() failed: %v", err)
	}

	var jpegBuf bytes.Buffer
	if err := jpeg.Encode(&jpegBuf, testImage(), nil); err != nil {
		t.Fatalf("jpeg.Encode() failed: %v", err)
	}

	cases := map[string][]byte{
		"image/png":  pngBuf.Bytes(),
		"image/jpeg": jpegBuf.Bytes(),
	}

	for contentType, data := range cases {
		logger := &gallerytest.Logger{}
		r, err := tools.NormalizeJpegOrientation(logger, bytes.NewReader(data), contentType)
		if err != nil {
			t.Fatalf("%s: NormalizeJpegOrientation() failed: %v", contentType, err)
		}

		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("%s: reading result failed: %v", contentType, err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("%s: image without EXIF rotation should pass through unchanged", contentType)
		}
	}
}

// withExifOrientation inserts an APP1 segment carrying only the EXIF
// orientation tag right after the JPEG SOI marker.
func withExifOrientation(jpegData []byte, orientation byte) []byte {
	app1 := []byte{
		0xFF, 0xE1, 0x00, 0x22,
		'E', 'x', 'i', 'f', 0x00, 0x00,
		'M', 'M', 0x00, 0x2A, 0x00, 0x00, 0x00, 0x08,
		0x00, 0x01,
		0x01, 0x12, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01, 0x00, orientation, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}

	out := make([]byte, 0, len(jpegData)+len(app1))
	out = append(out, jpegData[:2]...)
	out = append(out, app1...)
	return append(out, jpegData[2:]...)
}

func TestNormalizeJpegOrientationRotates(t *testing.T) {
	var jpegBuf bytes.Buffer
	if err := jpeg.Encode(&jpegBuf, testImage(), nil); err != nil {
		t.Fatalf("jpeg.Encode() failed: %v", err)
	}
	data := withExifOrientation(jpegBuf.Bytes(), 6)

	logger := &gallerytest.Logger{}
	if orientation, err := tools.TryFindExifOrientation(logger, bytes.NewReader(data)); err != nil || orientation != 6 {
		t.Fatalf("expected orientation 6, got %d, %v", orientation, err)
	}

	r, err := tools.NormalizeJpegOrientation(logger, bytes.NewReader(data), "image/jpeg")
	if err != nil {
		t.Fatalf("NormalizeJpegOrientation() failed: %v", err)
	}

	img, format, err := image.Decode(r)
	if err != nil {
		t.Fatalf("decoding result failed: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected a jpeg, got %s", format)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 4 {
		t.Errorf("orientation 6 should swap dimensions, got %v", img.Bounds())
	}
}

func TestNewDownloadToken(t *testing.T) {
	first, err := tools.NewDownloadToken()
	if err != nil {
		t.Fatalf("NewDownloadToken() failed: %v", err)
	}
	second, _ := tools.NewDownloadToken()

	if len(first) != 36 || first == second {
		t.Errorf("expected distinct uuid tokens, got %q and %q", first, second)
	}
}
