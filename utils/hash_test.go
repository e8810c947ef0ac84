package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("15032010")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if cost, _ := bcrypt.Cost([]byte(hash)); cost != hashCost {
		t.Errorf("cost = %d, want %d", cost, hashCost)
	}
	if !CheckPassword(hash, "15032010") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}
