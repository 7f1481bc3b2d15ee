package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000"

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func sendMultipart(url string, fields map[string]string, fileName string, fileData []byte) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		writer.WriteField(key, value)
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("files", fileName)
		if err != nil {
			return nil, nil, err
		}
		part.Write(fileData)
	}
	writer.Close()

	req, err := http.NewRequest("POST", baseURL+url, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp, body, err
}

func main() {
	color.Cyan("Clinical Notes API Smoke Test\n")

	// 1. Health
	color.Yellow("\n1. Health check")
	resp, err := http.Get(baseURL + "/")
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 2. Quick report from an inline text-less upload
	color.Yellow("\n2. Quick report with an unsupported file")
	resp2, body2, err := sendMultipart("/api/note/v1/quick_report", map[string]string{
		"user_id":  "smoke-test-user",
		"language": "English",
	}, "notes.xyz", []byte("free text notes"))
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp2.Status)
	prettyPrint(body2)

	// 3. Named section
	color.Yellow("\n3. Generate Present Illness section")
	resp3, body3, err := sendMultipart("/api/note/v1/generate_section/"+url.PathEscape("Present Illness"), map[string]string{
		"user_id":         "smoke-test-user",
		"physician_notes": "55yo male, chest pain on exertion",
	}, "", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp3.Status)
	prettyPrint(body3)

	// 4. Unknown section must 400
	color.Yellow("\n4. Unknown section name")
	resp4, body4, err := sendMultipart("/api/note/v1/generate_section/"+url.PathEscape("Bogus Section"), nil, "", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp4.Status)
	prettyPrint(body4)

	color.Cyan("\nDone.")
}
