package steps

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

// registerStatefileSteps registers export/import steps.
func registerStatefileSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I export the state$`, iExportTheState)
	ctx.Step(`^the export should be a downloadable JSON document$`, theExportShouldBeADownloadableJSONDocument)
	ctx.Step(`^I import the exported document with confirmation$`, iImportTheExportedDocumentWithConfirmation)
	ctx.Step(`^I import the exported document without confirmation$`, iImportTheExportedDocumentWithoutConfirmation)
	ctx.Step(`^I import the following document with confirmation:$`, iImportTheFollowingDocumentWithConfirmation)
}

func iExportTheState(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	if err := tc.doRequest("GET", "/api/v1/state/export", nil); err != nil {
		return err
	}
	if tc.response.StatusCode != 200 {
		return fmt.Errorf("failed to export state: status %d, body %s", tc.response.StatusCode, string(tc.responseBody))
	}
	tc.exported = append([]byte(nil), tc.responseBody...)
	return nil
}

func theExportShouldBeADownloadableJSONDocument(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}

	disposition := tc.response.Header.Get("Content-Disposition")
	if !strings.Contains(disposition, "attachment") || !strings.Contains(disposition, "gestor-gastos-backup.json") {
		return fmt.Errorf("unexpected Content-Disposition: %q", disposition)
	}

	// Pretty-printed documents carry indented lines
	if !bytes.Contains(tc.responseBody, []byte("\n  ")) {
		return fmt.Errorf("export is not pretty-printed: %s", string(tc.responseBody))
	}
	return nil
}

func iImportTheExportedDocumentWithConfirmation(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.exported == nil {
		return fmt.Errorf("no exported document available")
	}
	return tc.doRequest("POST", "/api/v1/state/import?confirm=true", tc.exported)
}

func iImportTheExportedDocumentWithoutConfirmation(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.exported == nil {
		return fmt.Errorf("no exported document available")
	}
	return tc.doRequest("POST", "/api/v1/state/import", tc.exported)
}

func iImportTheFollowingDocumentWithConfirmation(ctx context.Context, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.doRequest("POST", "/api/v1/state/import?confirm=true", []byte(tc.resolvePlaceholders(body.Content)))
}
