package querybuilder

import (
	"errors"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "total_points").
		From("scores").
		Where(EqFold("race_id", "Australian-Grand-Prix"), IsNull("deleted_at")).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, total_points FROM scores WHERE LOWER(race_id) = LOWER($1) AND deleted_at IS NULL ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "Australian-Grand-Prix" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_InAndExpr(t *testing.T) {
	query, args, err := Select("*").
		From("predictions").
		Where(In("user_id", "u1", "u2"), Expr("submitted_at > ?", 10)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM predictions WHERE user_id IN ($1, $2) AND submitted_at > $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		ID     string `db:"id"`
		Points int    `db:"total_points"`
		skip   string
		Note   string `db:"-"`
	}

	query, args, err := InsertModels("scores", []row{{ID: "a", Points: 1}, {ID: "b", Points: 2}}, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO scores (id, total_points) VALUES ($1, $2), ($3, $4) ON CONFLICT (id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != "b" || args[3] != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[row]("scores", nil, ""); !errors.Is(err, ErrMissingRows) {
		t.Fatalf("expected ErrMissingRows, got %v", err)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("scores").
		Where(EqFold("race_id", "bahrain-grand-prix")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM scores WHERE LOWER(race_id) = LOWER($1)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom(" ").ToSQL(); !errors.Is(err, ErrMissingTable) {
		t.Fatalf("expected ErrMissingTable, got %v", err)
	}
}
