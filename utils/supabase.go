package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	storage "github.com/supabase-community/storage-go"
)

// Bucket chứa ảnh sản phẩm và file export
const storageBucket = "healthquiz_assets"

// UploadToSupabase upload file (form-data hoặc []byte) lên bucket, trả public URL
func UploadToSupabase(file interface{}, filename string, fileID string, folder string, contentType string) (string, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_KEY")

	storageClient := storage.NewClient(supabaseURL+"/storage/v1", supabaseKey, nil)

	var reader io.Reader
	var ext string

	// File upload qua form-data
	if fh, ok := file.(*multipart.FileHeader); ok {
		f, err := fh.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		reader = f
		ext = filepath.Ext(fh.Filename)
		if contentType == "" {
			contentType = fh.Header.Get("Content-Type")
		}
		if _, err := f.Seek(0, 0); err != nil {
			return "", err
		}
	}

	// []byte (file sinh ra từ export job)
	if data, ok := file.([]byte); ok {
		reader = bytes.NewReader(data)
		ext = filepath.Ext(filename)
	}

	objectPath := fmt.Sprintf("%s%s", fileID, ext)
	if folder != "" {
		objectPath = fmt.Sprintf("%s/%s%s", folder, fileID, ext)
	}

	upsert := true
	options := storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}

	if _, err := storageClient.UploadFile(storageBucket, objectPath, reader, options); err != nil {
		return "", err
	}

	publicURL := storageClient.GetPublicUrl(storageBucket, objectPath)
	return publicURL.SignedURL, nil
}
