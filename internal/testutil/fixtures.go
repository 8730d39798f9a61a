// Package testutil provides shared fixtures for backend tests.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
)

// TinyPNG returns an encoded PNG of the given size, suitable as an upload
// fixture.
func TinyPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 13), B: 128, A: 255})
		}
	}
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// MultipartBody builds a multipart form body with the given text fields and
// an optional file field. It returns the body and the content type to send.
func MultipartBody(fields map[string]string, fileField, fileName string, fileContent []byte) (*bytes.Buffer, string, error) {
	body := bytes.NewBuffer(nil)
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", err
		}
	}
	if fileField != "" && fileContent != nil {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(fileContent); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}
