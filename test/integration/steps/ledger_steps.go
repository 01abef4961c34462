package steps

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
)

// registerLedgerSteps registers session, account, category and transaction steps.
func registerLedgerSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I have an open session for "([^"]*)"$`, iHaveAnOpenSessionFor)
	ctx.Step(`^I have an account "([^"]*)" with balance (\d+(?:\.\d+)?)$`, iHaveAnAccountWithBalance)
	ctx.Step(`^I have an? "([^"]*)" category "([^"]*)"$`, iHaveACategory)
	ctx.Step(`^I record an income of (\d+(?:\.\d+)?) on "([^"]*)" to "([^"]*)" categorized as "([^"]*)"$`, iRecordAnIncome)
	ctx.Step(`^I record an expense of (\d+(?:\.\d+)?) on "([^"]*)" from "([^"]*)" categorized as "([^"]*)"$`, iRecordAnExpense)
	ctx.Step(`^I transfer (\d+(?:\.\d+)?) on "([^"]*)" from "([^"]*)" to "([^"]*)"$`, iTransfer)
	ctx.Step(`^the account "([^"]*)" should have balance "([^"]*)"$`, theAccountShouldHaveBalance)
	ctx.Step(`^the total balance should be "([^"]*)"$`, theTotalBalanceShouldBe)
	ctx.Step(`^the state should have (\d+) transactions?$`, theStateShouldHaveTransactions)
}

func iHaveAnOpenSessionFor(ctx context.Context, email string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	body := fmt.Sprintf(`{"email": %q}`, email)
	if err := tc.doRequest("POST", "/api/v1/session", []byte(body)); err != nil {
		return err
	}
	if tc.response.StatusCode != 201 {
		return fmt.Errorf("failed to open session: status %d, body %s", tc.response.StatusCode, string(tc.responseBody))
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(tc.responseBody, &resp); err != nil {
		return fmt.Errorf("failed to parse session response: %w", err)
	}
	if resp.Token == "" {
		return fmt.Errorf("session response carried no token")
	}
	tc.sessionToken = resp.Token
	return nil
}

func iHaveAnAccountWithBalance(ctx context.Context, name string, balance float64) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	body := fmt.Sprintf(`{"name": %q, "balance": %g}`, name, balance)
	if err := tc.doRequest("POST", "/api/v1/accounts", []byte(body)); err != nil {
		return err
	}
	if tc.response.StatusCode != 201 {
		return fmt.Errorf("failed to create account: status %d, body %s", tc.response.StatusCode, string(tc.responseBody))
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(tc.responseBody, &resp); err != nil {
		return fmt.Errorf("failed to parse account response: %w", err)
	}
	tc.accountIDs[name] = resp.ID
	return nil
}

func iHaveACategory(ctx context.Context, categoryType, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	body := fmt.Sprintf(`{"name": %q, "type": %q}`, name, categoryType)
	if err := tc.doRequest("POST", "/api/v1/categories", []byte(body)); err != nil {
		return err
	}
	if tc.response.StatusCode != 201 {
		return fmt.Errorf("failed to create category: status %d, body %s", tc.response.StatusCode, string(tc.responseBody))
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(tc.responseBody, &resp); err != nil {
		return fmt.Errorf("failed to parse category response: %w", err)
	}
	tc.categoryIDs[name] = resp.ID
	return nil
}

func iRecordAnIncome(ctx context.Context, amount float64, date, accountName, categoryName string) error {
	return recordTransaction(ctx, "INCOME", amount, date, accountName, categoryName, "")
}

func iRecordAnExpense(ctx context.Context, amount float64, date, accountName, categoryName string) error {
	return recordTransaction(ctx, "EXPENSE", amount, date, accountName, categoryName, "")
}

func iTransfer(ctx context.Context, amount float64, date, fromName, toName string) error {
	return recordTransaction(ctx, "TRANSFER", amount, date, fromName, "", toName)
}

func recordTransaction(ctx context.Context, txType string, amount float64, date, accountName, categoryName, toAccountName string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	accountID, ok := tc.accountIDs[accountName]
	if !ok {
		return fmt.Errorf("unknown account %q", accountName)
	}

	payload := map[string]interface{}{
		"type":      txType,
		"amount":    amount,
		"date":      date,
		"accountId": accountID,
	}
	if categoryName != "" {
		categoryID, ok := tc.categoryIDs[categoryName]
		if !ok {
			return fmt.Errorf("unknown category %q", categoryName)
		}
		payload["categoryId"] = categoryID
	}
	if toAccountName != "" {
		toAccountID, ok := tc.accountIDs[toAccountName]
		if !ok {
			return fmt.Errorf("unknown account %q", toAccountName)
		}
		payload["toAccountId"] = toAccountID
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return tc.doRequest("POST", "/api/v1/transactions", body)
}

// stateDocument mirrors the /state response shape the assertions need.
type stateDocument struct {
	Accounts []struct {
		ID      string      `json:"id"`
		Name    string      `json:"name"`
		Balance json.Number `json:"balance"`
	} `json:"accounts"`
	Transactions []json.RawMessage `json:"transactions"`
}

func (tc *TestContext) fetchState() (*stateDocument, error) {
	if err := tc.doRequest("GET", "/api/v1/state", nil); err != nil {
		return nil, err
	}
	if tc.response.StatusCode != 200 {
		return nil, fmt.Errorf("failed to read state: status %d, body %s", tc.response.StatusCode, string(tc.responseBody))
	}

	var doc stateDocument
	if err := json.Unmarshal(tc.responseBody, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse state response: %w", err)
	}
	return &doc, nil
}

func theAccountShouldHaveBalance(ctx context.Context, name, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	doc, err := tc.fetchState()
	if err != nil {
		return err
	}

	for _, acc := range doc.Accounts {
		if acc.Name == name {
			if acc.Balance.String() != expected {
				return fmt.Errorf("account %q: expected balance %s, got %s", name, expected, acc.Balance.String())
			}
			return nil
		}
	}
	return fmt.Errorf("account %q not found in state", name)
}

func theTotalBalanceShouldBe(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	if err := tc.doRequest("GET", "/api/v1/dashboard/summary", nil); err != nil {
		return err
	}
	if tc.response.StatusCode != 200 {
		return fmt.Errorf("failed to read summary: status %d, body %s", tc.response.StatusCode, string(tc.responseBody))
	}

	var resp struct {
		TotalBalance json.Number `json:"totalBalance"`
	}
	if err := json.Unmarshal(tc.responseBody, &resp); err != nil {
		return fmt.Errorf("failed to parse summary response: %w", err)
	}
	if resp.TotalBalance.String() != expected {
		return fmt.Errorf("expected total balance %s, got %s", expected, resp.TotalBalance.String())
	}
	return nil
}

func theStateShouldHaveTransactions(ctx context.Context, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	doc, err := tc.fetchState()
	if err != nil {
		return err
	}
	if len(doc.Transactions) != count {
		return fmt.Errorf("expected %d transactions, got %d", count, len(doc.Transactions))
	}
	return nil
}
