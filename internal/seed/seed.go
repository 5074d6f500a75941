// Package seed generates demo users and memberships for local environments.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"gymbook/internal/model"
)

var firstNames = []string{"María", "José", "Carmen", "Luis", "Ana", "Carlos", "Lucía", "Jorge", "Elena", "Pedro"}

var lastNames = []string{"García", "Rodríguez", "Fernández", "López", "Martínez", "Quispe", "Torres", "Flores", "Vásquez", "Huamán"}

var balances = []*int64{nil, ptr(20000), ptr(15000), ptr(30000), ptr(100000)}

func ptr(v int64) *int64 { return &v }

// User builds a random demo user registered somewhere in early 2025.
func User(r *rand.Rand) *model.User {
	return &model.User{
		Name:             firstNames[r.Intn(len(firstNames))],
		LastName:         lastNames[r.Intn(len(lastNames))],
		RegistrationDate: randomDate(r, 1, 90),
		Hour:             fmt.Sprintf("%02d:%02d", 6+r.Intn(16), r.Intn(60)),
	}
}

// Membership builds a random demo membership for the given user. The end
// date always lands strictly after the start date.
func Membership(r *rand.Rand, userID uint) *model.Membership {
	startDay := 60 + r.Intn(120)
	return &model.Membership{
		UserID:    userID,
		StartDate: randomDay(startDay),
		EndDate:   randomDay(startDay + 30 + r.Intn(150)),
		Pay:       []model.PayStatus{model.PayStatusDebe, model.PayStatusPagado}[r.Intn(2)],
		Balance:   balances[r.Intn(len(balances))],
	}
}

func randomDate(r *rand.Rand, minDay, spread int) string {
	return randomDay(minDay + r.Intn(spread))
}

// randomDay maps a day offset from 2025-01-01 to a real calendar date.
func randomDay(offset int) string {
	return time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, offset).
		Format("2006-01-02")
}
