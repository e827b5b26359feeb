package integration

import (
	"fmt"
	"net/http"
	"testing"
)

// createCampusAndBook provisions a campus and cash book through the API and
// returns their IDs.
func createCampusAndBook(t *testing.T, app *testApp, token, campusName, bookName string) (float64, float64) {
	t.Helper()

	rec := app.request("POST", "/api/v1/campuses", fmt.Sprintf(`{"name":%q}`, campusName), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create campus failed: %d %s", rec.Code, rec.Body.String())
	}
	campus := parseJSON(t, rec)["campus"].(map[string]interface{})
	campusID := campus["id"].(float64)

	rec = app.request("POST", "/api/v1/cash-books",
		fmt.Sprintf(`{"name":%q,"campus_id":%d}`, bookName, int(campusID)), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create cash book failed: %d %s", rec.Code, rec.Body.String())
	}
	book := parseJSON(t, rec)["cash_book"].(map[string]interface{})
	return campusID, book["id"].(float64)
}

func TestTransactionFlow_CreateListAndFilter(t *testing.T) {
	app := setupApp(t)
	token := app.loginAdmin(t)

	_, bookID := createCampusAndBook(t, app, token, "Main Campus", "Main Counter")

	// A category to attach to entries.
	rec := app.request("POST", "/api/v1/categories", `{"name":"Donations"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category failed: %d %s", rec.Code, rec.Body.String())
	}
	category := parseJSON(t, rec)["category"].(map[string]interface{})
	categoryID := int(category["id"].(float64))

	// Record an IN and an OUT entry.
	rec = app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"type":"IN","amount":10000,"cash_book_id":%d,"category_id":%d,"remarks":"friday collection"}`,
			int(bookID), categoryID), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create IN failed: %d %s", rec.Code, rec.Body.String())
	}
	txn := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if txn["amount"].(float64) != 10000 {
		t.Errorf("expected amount 10000, got %v", txn["amount"])
	}
	if txn["date"] == nil || txn["time"] == "" {
		t.Error("expected date and time to be stamped")
	}

	rec = app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"type":"OUT","amount":3000,"cash_book_id":%d,"remarks":"cleaning supplies"}`, int(bookID)), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create OUT failed: %d %s", rec.Code, rec.Body.String())
	}

	// Full list.
	rec = app.request("GET", "/api/v1/transactions", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	list := parseJSON(t, rec)
	if list["total_items"].(float64) != 2 {
		t.Errorf("expected 2 entries, got %v", list["total_items"])
	}

	// Filtered by type.
	rec = app.request("GET", "/api/v1/transactions?type=OUT", "", token)
	list = parseJSON(t, rec)
	if list["total_items"].(float64) != 1 {
		t.Errorf("expected 1 OUT entry, got %v", list["total_items"])
	}

	// Filtered by search.
	rec = app.request("GET", "/api/v1/transactions?search=friday", "", token)
	list = parseJSON(t, rec)
	if list["total_items"].(float64) != 1 {
		t.Errorf("expected 1 search match, got %v", list["total_items"])
	}
}

func TestTransactionFlow_InlinePartyAndDistinctParties(t *testing.T) {
	app := setupApp(t)
	token := app.loginAdmin(t)

	_, bookID := createCampusAndBook(t, app, token, "Party Campus", "Party Counter")

	for i := 0; i < 2; i++ {
		rec := app.request("POST", "/api/v1/transactions",
			fmt.Sprintf(`{"type":"IN","amount":5000,"cash_book_id":%d,"party_name":"Ahmad Trading","party_mobile":"+60123456789"}`,
				int(bookID)), token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	// Both entries share one party row.
	rec := app.request("GET", "/api/v1/parties", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list parties failed: %d %s", rec.Code, rec.Body.String())
	}
	parties := parseJSON(t, rec)
	if parties["total_items"].(float64) != 1 {
		t.Errorf("expected 1 party, got %v", parties["total_items"])
	}

	rec = app.request("GET", "/api/v1/transactions/parties", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("distinct parties failed: %d %s", rec.Code, rec.Body.String())
	}
	distinct := parseJSON(t, rec)["parties"].([]interface{})
	if len(distinct) != 1 {
		t.Errorf("expected 1 distinct pair, got %d", len(distinct))
	}
}

func TestTransactionFlow_StaffScoping(t *testing.T) {
	app := setupApp(t)
	adminToken := app.loginAdmin(t)

	_, visibleBookID := createCampusAndBook(t, app, adminToken, "Visible Campus", "Visible Book")
	_, hiddenBookID := createCampusAndBook(t, app, adminToken, "Hidden Campus", "Hidden Book")

	// One entry in each campus.
	for _, bookID := range []float64{visibleBookID, hiddenBookID} {
		rec := app.request("POST", "/api/v1/transactions",
			fmt.Sprintf(`{"type":"IN","amount":1000,"cash_book_id":%d}`, int(bookID)), adminToken)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	// Staff assigned only to the visible campus.
	var visibleCampusID uint
	app.DB.Raw("SELECT campus_id FROM cash_books WHERE id = ?", uint(visibleBookID)).Scan(&visibleCampusID)
	staff := app.seedUser(t, "Staff", visibleCampusID)
	staffToken, _ := app.login(t, staff.Mobile, "password123")

	rec := app.request("GET", "/api/v1/transactions", "", staffToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	list := parseJSON(t, rec)
	if list["total_items"].(float64) != 1 {
		t.Errorf("expected staff to see 1 entry, got %v", list["total_items"])
	}

	// Staff cannot write into the hidden campus.
	rec = app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"type":"IN","amount":100,"cash_book_id":%d}`, int(hiddenBookID)), staffToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}

	// Staff cannot backdate.
	rec = app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"type":"IN","amount":100,"cash_book_id":%d,"date":"2020-01-01"}`, int(visibleBookID)), staffToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for backdated entry, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "BACKDATED_TRANSACTION" {
		t.Errorf("expected BACKDATED_TRANSACTION, got %v", errObj["code"])
	}
}

func TestCashBookFlow_DeleteGuard(t *testing.T) {
	app := setupApp(t)
	token := app.loginAdmin(t)

	_, bookID := createCampusAndBook(t, app, token, "Guard Campus", "Guarded Book")

	rec := app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"type":"IN","amount":100,"cash_book_id":%d}`, int(bookID)), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}

	// Delete is refused while entries exist, admin or not.
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/cash-books/%d", int(bookID)), "", token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "CASH_BOOK_IN_USE" {
		t.Errorf("expected CASH_BOOK_IN_USE, got %v", errObj["code"])
	}

	// Removing the entry unblocks the delete.
	rec = app.request("GET", "/api/v1/transactions", "", token)
	list := parseJSON(t, rec)
	entry := list["data"].([]interface{})[0].(map[string]interface{})
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/transactions/%d", int(entry["id"].(float64))), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete transaction failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("DELETE", fmt.Sprintf("/api/v1/cash-books/%d", int(bookID)), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after clearing entries, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestOpeningBalanceFlow(t *testing.T) {
	app := setupApp(t)
	token := app.loginAdmin(t)

	_, bookID := createCampusAndBook(t, app, token, "Baseline Campus", "Baseline Book")

	rec := app.request("POST", "/api/v1/opening-balances",
		fmt.Sprintf(`{"cash_book_id":%d,"amount":250000}`, int(bookID)), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create opening balance failed: %d %s", rec.Code, rec.Body.String())
	}
	balance := parseJSON(t, rec)["opening_balance"].(map[string]interface{})
	if balance["amount"].(float64) != 250000 {
		t.Errorf("expected amount 250000, got %v", balance["amount"])
	}
	if balance["date"] == nil || balance["created_by"].(float64) == 0 {
		t.Error("expected date and creator to be stamped")
	}

	// Only the amount can be corrected.
	id := int(balance["id"].(float64))
	rec = app.request("PUT", fmt.Sprintf("/api/v1/opening-balances/%d", id), `{"amount":300000}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["opening_balance"].(map[string]interface{})
	if updated["amount"].(float64) != 300000 {
		t.Errorf("expected corrected amount, got %v", updated["amount"])
	}
	if updated["created_by"] != balance["created_by"] {
		t.Error("expected creator to stay immutable")
	}
}
