package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"walletengine/src/model"
)

func TestWalletRepositoryFindByID(t *testing.T) {
	t.Run("returns the wallet when it exists", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewWalletRepository().WithDB(gdb)

		rows := sqlmock.NewRows([]string{"wallet_id", "user_id", "name", "env", "enabled", "created_at", "updated_at"}).
			AddRow("w-1", "u-1", "Paper wallet", "paper", true, time.Now(), time.Now())

		mock.ExpectQuery(`SELECT \* FROM "wallets" WHERE wallet_id = \$1`).
			WithArgs("w-1", 1).
			WillReturnRows(rows)

		wallet, err := repo.FindByID(context.Background(), "w-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if wallet == nil {
			t.Fatal("expected a wallet, got nil")
		}
		if wallet.UserID != "u-1" {
			t.Errorf("expected user u-1, got %s", wallet.UserID)
		}
		if wallet.Env != model.WalletEnvPaper {
			t.Errorf("expected paper env, got %s", wallet.Env)
		}

		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
	})

	t.Run("returns nil without error when missing", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := NewWalletRepository().WithDB(gdb)

		mock.ExpectQuery(`SELECT \* FROM "wallets" WHERE wallet_id = \$1`).
			WithArgs("w-missing", 1).
			WillReturnRows(sqlmock.NewRows([]string{"wallet_id"}))

		wallet, err := repo.FindByID(context.Background(), "w-missing")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if wallet != nil {
			t.Fatalf("expected nil wallet, got %+v", wallet)
		}
	})
}

func TestWalletRepositoryFindEnabled(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewWalletRepository().WithDB(gdb)

	rows := sqlmock.NewRows([]string{"wallet_id", "user_id", "env", "enabled"}).
		AddRow("w-1", "u-1", "paper", true).
		AddRow("w-2", "u-2", "live", true)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "wallets" WHERE enabled = $1 ORDER BY wallet_id ASC`)).
		WithArgs(true).
		WillReturnRows(rows)

	wallets, err := repo.FindEnabled(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wallets) != 2 {
		t.Fatalf("expected 2 wallets, got %d", len(wallets))
	}
	if wallets[0].ID != "w-1" || wallets[1].ID != "w-2" {
		t.Errorf("expected wallets ordered by id, got %s then %s", wallets[0].ID, wallets[1].ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}
