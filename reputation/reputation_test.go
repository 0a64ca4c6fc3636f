package reputation

import (
	"fmt"
	"strings"
	"testing"

	"restaurant-ordering-api/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Customer{}, &models.Employee{},
		&models.Product{}, &models.ProductRating{},
		&models.Order{}, &models.OrderItem{},
		&models.Compliment{}, &models.Complaint{},
	))
	return db
}

func newUser(t *testing.T, db *gorm.DB, name string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Status:       models.AccountActive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newCustomer(t *testing.T, db *gorm.DB, name string, vip bool) *models.Customer {
	t.Helper()
	user := newUser(t, db, name, models.RoleCustomer)
	customer := &models.Customer{UserID: user.ID, VIP: vip}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func newEmployee(t *testing.T, db *gorm.DB, name string, role models.UserRole, status models.EmploymentStatus) *models.Employee {
	t.Helper()
	user := newUser(t, db, name, role)
	employee := &models.Employee{
		UserID:           user.ID,
		Salary:           2000,
		Bonus:            10000,
		Demotion:         1500,
		EmploymentStatus: status,
	}
	require.NoError(t, db.Create(employee).Error)
	return employee
}

func compliment(t *testing.T, db *gorm.DB, senderUserID, recipientUserID uint) {
	t.Helper()
	require.NoError(t, db.Create(&models.Compliment{
		SenderID:    &senderUserID,
		RecipientID: recipientUserID,
		Message:     "great work",
	}).Error)
}

func complaint(t *testing.T, db *gorm.DB, senderUserID, recipientUserID uint, status models.ComplaintStatus) {
	t.Helper()
	require.NoError(t, db.Create(&models.Complaint{
		SenderID:    &senderUserID,
		RecipientID: recipientUserID,
		Message:     "bad experience",
		Status:      status,
	}).Error)
}

func TestScoreWeighting(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db)

	chef := newEmployee(t, db, "chef", models.RoleChef, models.EmploymentOkay)
	regular := newCustomer(t, db, "regular", false)
	vip := newCustomer(t, db, "vip", true)

	score, err := engine.Score(chef.UserID)
	require.NoError(t, err)
	assert.Equal(t, 0, score)

	// A non-VIP compliment is worth +1
	compliment(t, db, regular.UserID, chef.UserID)
	score, err = engine.Score(chef.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, score)

	// A VIP compliment is worth +2, not +1
	compliment(t, db, vip.UserID, chef.UserID)
	score, err = engine.Score(chef.UserID)
	require.NoError(t, err)
	assert.Equal(t, 3, score)

	// A valid non-VIP complaint is worth -1
	complaint(t, db, regular.UserID, chef.UserID, models.ComplaintValid)
	score, err = engine.Score(chef.UserID)
	require.NoError(t, err)
	assert.Equal(t, 2, score)

	// A valid VIP complaint is worth -2
	complaint(t, db, vip.UserID, chef.UserID, models.ComplaintValid)
	score, err = engine.Score(chef.UserID)
	require.NoError(t, err)
	assert.Equal(t, 0, score)

	// Pending and invalid complaints never count
	complaint(t, db, regular.UserID, chef.UserID, models.ComplaintPending)
	complaint(t, db, vip.UserID, chef.UserID, models.ComplaintInvalid)
	score, err = engine.Score(chef.UserID)
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}

func TestThreeComplimentsPromote(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db)

	chef := newEmployee(t, db, "chef", models.RoleChef, models.EmploymentOkay)
	senders := []*models.Customer{
		newCustomer(t, db, "c1", false),
		newCustomer(t, db, "c2", false),
		newCustomer(t, db, "c3", false),
	}

	// First two compliments leave the chef Okay; the third promotes
	for i, sender := range senders {
		compliment(t, db, sender.UserID, chef.UserID)
		require.NoError(t, engine.ApplyComplimentSideEffects(chef))
		if i < 2 {
			assert.Equal(t, models.EmploymentOkay, chef.EmploymentStatus)
			assert.Equal(t, int64(2000), chef.Salary)
		}
	}

	assert.Equal(t, models.EmploymentPromoted, chef.EmploymentStatus)
	assert.Equal(t, int64(12000), chef.Salary)

	var stored models.Employee
	require.NoError(t, db.First(&stored, chef.ID).Error)
	assert.Equal(t, models.EmploymentPromoted, stored.EmploymentStatus)
	assert.Equal(t, int64(12000), stored.Salary)
}

func TestFiredEmployeeRejectsFeedback(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db)

	fired := newEmployee(t, db, "fired", models.RoleDeliverer, models.EmploymentFired)

	err := engine.ApplyComplimentSideEffects(fired)
	require.Error(t, err)

	err = engine.ApplyComplaintSideEffects(fired)
	require.Error(t, err)
}

func TestDemotedRecoversToWarned(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db)

	chef := newEmployee(t, db, "chef", models.RoleChef, models.EmploymentDemoted)
	sender := newCustomer(t, db, "sender", false)

	compliment(t, db, sender.UserID, chef.UserID)
	require.NoError(t, engine.ApplyComplimentSideEffects(chef))

	assert.Equal(t, models.EmploymentWarned, chef.EmploymentStatus)
	assert.Equal(t, int64(2000+1500), chef.Salary)
}

func TestWarnedEmployeeIsFiredAndSuspended(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db)

	deliverer := newEmployee(t, db, "deliverer", models.RoleDeliverer, models.EmploymentWarned)
	sender := newCustomer(t, db, "sender", false)

	// Three valid complaints push the score to -3
	for i := 0; i < 3; i++ {
		complaint(t, db, sender.UserID, deliverer.UserID, models.ComplaintValid)
	}
	require.NoError(t, engine.ApplyComplaintSideEffects(deliverer))

	assert.Equal(t, models.EmploymentFired, deliverer.EmploymentStatus)
	assert.Equal(t, int64(2000), deliverer.Salary)

	// Firing and account suspension land together
	var user models.User
	require.NoError(t, db.First(&user, deliverer.UserID).Error)
	assert.Equal(t, models.AccountSuspended, user.Status)
}

func TestPromotedDropsToOkayLosingBonus(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db)

	chef := newEmployee(t, db, "chef", models.RoleChef, models.EmploymentPromoted)
	chef.Salary = 12000
	require.NoError(t, db.Model(chef).Update("salary", chef.Salary).Error)
	sender := newCustomer(t, db, "sender", false)

	complaint(t, db, sender.UserID, chef.UserID, models.ComplaintValid)
	require.NoError(t, engine.ApplyComplaintSideEffects(chef))

	assert.Equal(t, models.EmploymentOkay, chef.EmploymentStatus)
	assert.Equal(t, int64(2000), chef.Salary)
}

func TestOkayIsDemotedAtMinusThree(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db)

	chef := newEmployee(t, db, "chef", models.RoleChef, models.EmploymentOkay)
	sender := newCustomer(t, db, "sender", false)

	for i := 0; i < 3; i++ {
		complaint(t, db, sender.UserID, chef.UserID, models.ComplaintValid)
	}
	require.NoError(t, engine.ApplyComplaintSideEffects(chef))

	assert.Equal(t, models.EmploymentDemoted, chef.EmploymentStatus)
	assert.Equal(t, int64(2000-1500), chef.Salary)
}

func TestChefAverageRating(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db)

	chef := newEmployee(t, db, "chef", models.RoleChef, models.EmploymentOkay)
	rater := newCustomer(t, db, "rater", false)

	// No ratings yet: no average, not zero
	_, ok, err := engine.AverageRating(chef.UserID, models.RoleChef)
	require.NoError(t, err)
	assert.False(t, ok)

	food := &models.Product{Name: "soup", Price: 500, Type: models.ProductFood, CreatorID: &chef.UserID}
	merch := &models.Product{Name: "mug", Price: 900, Type: models.ProductMerch, CreatorID: &chef.UserID}
	require.NoError(t, db.Create(food).Error)
	require.NoError(t, db.Create(merch).Error)

	require.NoError(t, db.Create(&models.ProductRating{ProductID: food.ID, RaterID: rater.UserID, Rating: 4}).Error)
	require.NoError(t, db.Create(&models.ProductRating{ProductID: food.ID, RaterID: chef.UserID, Rating: 2}).Error)
	// Merch ratings are excluded from the chef's average
	require.NoError(t, db.Create(&models.ProductRating{ProductID: merch.ID, RaterID: rater.UserID, Rating: 1}).Error)

	avg, ok, err := engine.AverageRating(chef.UserID, models.RoleChef)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 3.0, avg, 0.001)
}

func TestDelivererAverageRating(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db)

	deliverer := newEmployee(t, db, "deliverer", models.RoleDeliverer, models.EmploymentOkay)
	chef := newEmployee(t, db, "chef", models.RoleChef, models.EmploymentOkay)
	customer := newCustomer(t, db, "customer", false)

	food := &models.Product{Name: "soup", Price: 500, Type: models.ProductFood, CreatorID: &chef.UserID}
	require.NoError(t, db.Create(food).Error)

	order := &models.Order{
		Reference:           "ref-1",
		CustomerID:          &customer.ID,
		Status:              models.OrderDelivered,
		OrderType:           models.ProductFood,
		Total:               500,
		AssignedDelivererID: &deliverer.UserID,
		Items:               []models.OrderItem{{ProductID: food.ID, Quantity: 1, UnitPrice: 500, TotalCost: 500}},
	}
	require.NoError(t, db.Create(order).Error)
	require.NoError(t, db.Create(&models.ProductRating{ProductID: food.ID, RaterID: customer.UserID, Rating: 5}).Error)

	avg, ok, err := engine.AverageRating(deliverer.UserID, models.RoleDeliverer)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 5.0, avg, 0.001)

	// A deliverer with no delivered orders has no average
	idle := newEmployee(t, db, "idle", models.RoleDeliverer, models.EmploymentOkay)
	_, ok, err = engine.AverageRating(idle.UserID, models.RoleDeliverer)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelivererAverageCountsEachRatingOnce(t *testing.T) {
	db := setupDB(t)
	engine := NewEngine(db)

	deliverer := newEmployee(t, db, "deliverer", models.RoleDeliverer, models.EmploymentOkay)
	customer := newCustomer(t, db, "customer", false)

	popular := &models.Product{Name: "soup", Price: 500, Type: models.ProductFood}
	rare := &models.Product{Name: "stew", Price: 700, Type: models.ProductFood}
	require.NoError(t, db.Create(popular).Error)
	require.NoError(t, db.Create(rare).Error)

	// The popular dish is delivered twice, the rare one once
	for i, productID := range []uint{popular.ID, popular.ID, rare.ID} {
		require.NoError(t, db.Create(&models.Order{
			Reference:           fmt.Sprintf("ref-%d", i),
			CustomerID:          &customer.ID,
			Status:              models.OrderDelivered,
			OrderType:           models.ProductFood,
			Total:               500,
			AssignedDelivererID: &deliverer.UserID,
			Items:               []models.OrderItem{{ProductID: productID, Quantity: 1, UnitPrice: 500, TotalCost: 500}},
		}).Error)
	}

	require.NoError(t, db.Create(&models.ProductRating{ProductID: popular.ID, RaterID: customer.UserID, Rating: 4}).Error)
	require.NoError(t, db.Create(&models.ProductRating{ProductID: rare.ID, RaterID: customer.UserID, Rating: 2}).Error)

	// Repeat deliveries of the same product must not reweight its rating:
	// the mean is (4+2)/2, never (4+4+2)/3
	avg, ok, err := engine.AverageRating(deliverer.UserID, models.RoleDeliverer)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 3.0, avg, 0.001)
}
