package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/paymentgateway"
	"milk-platform-be/internal/repository/contract"
	"milk-platform-be/internal/repository/specification"
	"milk-platform-be/internal/repository/unitofwork"
	"milk-platform-be/pkg/schedule"

	"github.com/google/uuid"
)

var errInjected = errors.New("injected failure")

var ist = time.FixedZone("IST", 5*3600+1800)

// fixedCalendar pins now to the given local wall-clock time in IST.
func fixedCalendar(y int, m time.Month, d, hour int) schedule.Calendar {
	now := time.Date(y, m, d, hour, 0, 0, 0, ist)
	return schedule.NewCalendar(ist, func() time.Time { return now })
}

type storeState struct {
	users    []*entity.User
	milks    []*entity.Milk
	orders   []*entity.Order
	subs     []*entity.Subscription
	payments []*entity.Payment
	ratings  []*entity.Rating
}

func (s storeState) clone() storeState {
	return storeState{
		users:    cloneAll(s.users, cloneUser),
		milks:    cloneAll(s.milks, cloneMilk),
		orders:   cloneAll(s.orders, cloneOrder),
		subs:     cloneAll(s.subs, cloneSub),
		payments: cloneAll(s.payments, clonePayment),
		ratings:  cloneAll(s.ratings, cloneRating),
	}
}

// fakeStore is an in-memory database shared by every unit of work created from it.
type fakeStore struct {
	mu     sync.Mutex
	state  storeState
	failOn map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{failOn: map[string]bool{}}
}

func (f *fakeStore) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return &fakeUoW{store: f}
}

func (f *fakeStore) fail(op string) error {
	if f.failOn[op] {
		return errInjected
	}
	return nil
}

func (f *fakeStore) addUser(u *entity.User) *entity.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.users = append(f.state.users, cloneUser(u))
	return u
}

func (f *fakeStore) addMilk(m *entity.Milk) *entity.Milk {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.milks = append(f.state.milks, cloneMilk(m))
	return m
}

func (f *fakeStore) addOrder(o *entity.Order) *entity.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.orders = append(f.state.orders, cloneOrder(o))
	return o
}

func (f *fakeStore) addPayment(p *entity.Payment) *entity.Payment {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.payments = append(f.state.payments, clonePayment(p))
	return p
}

func (f *fakeStore) order(id uuid.UUID) *entity.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.state.orders {
		if o.Id == id {
			return cloneOrder(o)
		}
	}
	return nil
}

func (f *fakeStore) subscription(id uuid.UUID) *entity.Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.state.subs {
		if s.Id == id {
			return cloneSub(s)
		}
	}
	return nil
}

func (f *fakeStore) user(id uuid.UUID) *entity.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.state.users {
		if u.Id == id {
			return cloneUser(u)
		}
	}
	return nil
}

func (f *fakeStore) milk(id uuid.UUID) *entity.Milk {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.state.milks {
		if m.Id == id {
			return cloneMilk(m)
		}
	}
	return nil
}

func (f *fakeStore) payment(id uuid.UUID) *entity.Payment {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.state.payments {
		if p.Id == id {
			return clonePayment(p)
		}
	}
	return nil
}

// ordersOf returns a subscription's orders sorted by delivery date.
func (f *fakeStore) ordersOf(subId uuid.UUID) []*entity.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []*entity.Order
	for _, o := range f.state.orders {
		if o.SubscriptionId != nil && *o.SubscriptionId == subId {
			res = append(res, cloneOrder(o))
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].DeliveryDate.Before(res[j].DeliveryDate) })
	return res
}

func (f *fakeStore) subscriptionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.state.subs)
}

func (f *fakeStore) orderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.state.orders)
}

type fakeUoW struct {
	store    *fakeStore
	snapshot *storeState
}

func (u *fakeUoW) Begin(_ context.Context) error {
	if u.snapshot != nil {
		return fmt.Errorf("transaction already started")
	}
	u.store.mu.Lock()
	snap := u.store.state.clone()
	u.store.mu.Unlock()
	u.snapshot = &snap
	return nil
}

func (u *fakeUoW) Commit() error {
	if u.snapshot == nil {
		return fmt.Errorf("no transaction to commit")
	}
	u.snapshot = nil
	return nil
}

func (u *fakeUoW) Rollback() error {
	if u.snapshot == nil {
		return nil
	}
	u.store.mu.Lock()
	u.store.state = *u.snapshot
	u.store.mu.Unlock()
	u.snapshot = nil
	return nil
}

func (u *fakeUoW) UserRepository() contract.UserRepository                 { return fakeUsers{u.store} }
func (u *fakeUoW) MilkRepository() contract.MilkRepository                 { return fakeMilks{u.store} }
func (u *fakeUoW) OrderRepository() contract.OrderRepository               { return fakeOrders{u.store} }
func (u *fakeUoW) SubscriptionRepository() contract.SubscriptionRepository { return fakeSubs{u.store} }
func (u *fakeUoW) PaymentRepository() contract.PaymentRepository           { return fakePayments{u.store} }
func (u *fakeUoW) RatingRepository() contract.RatingRepository             { return fakeRatings{u.store} }

// --- specification interpreter ---

type columns func(name string) interface{}

func str(v interface{}) string {
	switch t := v.(type) {
	case *uuid.UUID:
		if t == nil {
			return ""
		}
		return t.String()
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

func eq(a, b interface{}) bool {
	return str(a) == str(b)
}

func matches(col columns, specs []specification.Specification) bool {
	for _, sp := range specs {
		ok := true
		switch s := sp.(type) {
		case specification.ByID:
			ok = eq(col("id"), s.ID)
		case specification.OwnedByCustomer:
			ok = eq(col("customer_id"), s.CustomerID)
		case specification.OwnedBySeller:
			ok = eq(col("seller_id"), s.SellerID)
		case specification.ByStatus:
			ok = eq(col("status"), s.Status)
		case specification.BySubscription:
			ok = eq(col("subscription_id"), s.SubscriptionID)
		case specification.ByOrder:
			ok = eq(col("order_id"), s.OrderID)
		case specification.ByMilk:
			ok = eq(col("milk_id"), s.MilkID)
		case specification.ByEmail:
			ok = strings.EqualFold(str(col("email")), s.Email)
		case specification.ByRole:
			ok = eq(col("role"), s.Role)
		case specification.ByRatingType:
			ok = eq(col("rating_type"), s.RatingType)
		case specification.ActiveUsers:
			ok = col("is_active") == true
		case specification.AvailableMilk:
			ok = col("is_available") == true
		case specification.MilkTypeMatches:
			ok = strings.EqualFold(str(col("milk_type")), s.Type) ||
				(str(col("milk_type")) == string(entity.MilkTypeOther) && strings.EqualFold(str(col("custom_milk_type")), s.Type))
		case specification.DeliveredOn:
			t := col("delivery_date").(time.Time)
			ok = !t.Before(s.Day) && t.Before(s.Day.AddDate(0, 0, 1))
		case specification.EndsBefore:
			ok = col("end_date").(time.Time).Before(s.Day)
		case specification.TimeRange:
			t := col(s.Field).(time.Time)
			ok = (s.From.IsZero() || !t.Before(s.From)) && (s.To.IsZero() || t.Before(s.To))
		case specification.FilterBy:
			ok = eq(col(s.Field), s.Value)
		}
		if !ok {
			return false
		}
	}
	return true
}

func less(a, b interface{}) bool {
	switch av := a.(type) {
	case time.Time:
		return av.Before(b.(time.Time))
	case float64:
		return av < b.(float64)
	case int:
		return av < b.(int)
	}
	return str(a) < str(b)
}

func query[T any](items []*T, colsOf func(*T) columns, clone func(*T) *T, specs []specification.Specification) []*T {
	var res []*T
	for _, it := range items {
		if matches(colsOf(it), specs) {
			res = append(res, clone(it))
		}
	}
	for _, sp := range specs {
		if ob, ok := sp.(specification.OrderBy); ok {
			sort.SliceStable(res, func(i, j int) bool {
				a, b := colsOf(res[i])(ob.Field), colsOf(res[j])(ob.Field)
				if ob.Desc {
					return less(b, a)
				}
				return less(a, b)
			})
		}
	}
	return res
}

func first[T any](items []*T) *T {
	if len(items) == 0 {
		return nil
	}
	return items[0]
}

func cloneAll[T any](items []*T, clone func(*T) *T) []*T {
	res := make([]*T, 0, len(items))
	for _, it := range items {
		res = append(res, clone(it))
	}
	return res
}

func replace[T any](items []*T, id uuid.UUID, idOf func(*T) uuid.UUID, next *T) error {
	for i, it := range items {
		if idOf(it) == id {
			items[i] = next
			return nil
		}
	}
	return fmt.Errorf("record %s not found", id)
}

func remove[T any](items []*T, id uuid.UUID, idOf func(*T) uuid.UUID) []*T {
	res := items[:0]
	for _, it := range items {
		if idOf(it) != id {
			res = append(res, it)
		}
	}
	return res
}

// --- entity adapters ---

func cloneUser(u *entity.User) *entity.User { c := *u; return &c }

func cloneMilk(m *entity.Milk) *entity.Milk {
	c := *m
	c.AvailabilityDays = append([]string(nil), m.AvailabilityDays...)
	c.Seller = nil
	return &c
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Customer, c.Seller, c.Milk, c.Subscription = nil, nil, nil, nil
	return &c
}

func cloneSub(s *entity.Subscription) *entity.Subscription {
	c := *s
	c.PausedDates = append([]entity.PausedDate{}, s.PausedDates...)
	c.Customer, c.Seller, c.Milk, c.Orders = nil, nil, nil, nil
	return &c
}

func clonePayment(p *entity.Payment) *entity.Payment {
	c := *p
	c.Customer, c.Seller, c.Order, c.Subscription = nil, nil, nil, nil
	return &c
}

func cloneRating(r *entity.Rating) *entity.Rating {
	c := *r
	c.Customer, c.Seller, c.Milk, c.Order = nil, nil, nil, nil
	return &c
}

func userCols(u *entity.User) columns {
	return func(name string) interface{} {
		switch name {
		case "id":
			return u.Id
		case "email":
			return u.Email
		case "role":
			return u.Role
		case "is_active":
			return u.IsActive
		case "created_at":
			return u.CreatedAt
		}
		panic("unknown user column " + name)
	}
}

func milkCols(m *entity.Milk) columns {
	return func(name string) interface{} {
		switch name {
		case "id":
			return m.Id
		case "seller_id":
			return m.SellerId
		case "milk_type":
			return m.MilkType
		case "custom_milk_type":
			return m.CustomMilkType
		case "is_available":
			return m.IsAvailable
		case "average_rating":
			return m.AverageRating
		case "created_at":
			return m.CreatedAt
		}
		panic("unknown milk column " + name)
	}
}

func orderCols(o *entity.Order) columns {
	return func(name string) interface{} {
		switch name {
		case "id":
			return o.Id
		case "customer_id":
			return o.CustomerId
		case "seller_id":
			return o.SellerId
		case "milk_id":
			return o.MilkId
		case "status":
			return o.Status
		case "subscription_id":
			return o.SubscriptionId
		case "delivery_date":
			return o.DeliveryDate
		case "created_at":
			return o.CreatedAt
		}
		panic("unknown order column " + name)
	}
}

func subCols(s *entity.Subscription) columns {
	return func(name string) interface{} {
		switch name {
		case "id":
			return s.Id
		case "customer_id":
			return s.CustomerId
		case "seller_id":
			return s.SellerId
		case "status":
			return s.Status
		case "end_date":
			return s.EndDate
		case "created_at":
			return s.CreatedAt
		}
		panic("unknown subscription column " + name)
	}
}

func paymentCols(p *entity.Payment) columns {
	return func(name string) interface{} {
		switch name {
		case "id":
			return p.Id
		case "customer_id":
			return p.CustomerId
		case "seller_id":
			return p.SellerId
		case "order_id":
			return p.OrderId
		case "subscription_id":
			return p.SubscriptionId
		case "status", "payment_status":
			return p.PaymentStatus
		case "created_at":
			return p.CreatedAt
		}
		panic("unknown payment column " + name)
	}
}

func ratingCols(r *entity.Rating) columns {
	return func(name string) interface{} {
		switch name {
		case "id":
			return r.Id
		case "customer_id":
			return r.CustomerId
		case "seller_id":
			return r.SellerId
		case "milk_id":
			return r.MilkId
		case "order_id":
			return r.OrderId
		case "rating_type":
			return r.RatingType
		case "created_at":
			return r.CreatedAt
		}
		panic("unknown rating column " + name)
	}
}

// --- repositories ---

type fakeUsers struct{ s *fakeStore }

func (r fakeUsers) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.state.users = append(r.s.state.users, cloneUser(u))
	return nil
}

func (r fakeUsers) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return replace(r.s.state.users, u.Id, func(x *entity.User) uuid.UUID { return x.Id }, cloneUser(u))
}

func (r fakeUsers) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return first(query(r.s.state.users, userCols, cloneUser, specs)), nil
}

func (r fakeUsers) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return query(r.s.state.users, userCols, cloneUser, specs), nil
}

func (r fakeUsers) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(query(r.s.state.users, userCols, cloneUser, specs))), nil
}

func (r fakeUsers) UpdateRating(_ context.Context, id uuid.UUID, agg entity.RatingAggregate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.state.users {
		if u.Id == id {
			u.AverageRating = agg.Rounded()
			u.TotalRatings = agg.Count
		}
	}
	return nil
}

type fakeMilks struct{ s *fakeStore }

func (r fakeMilks) Create(_ context.Context, m *entity.Milk) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.state.milks = append(r.s.state.milks, cloneMilk(m))
	return nil
}

func (r fakeMilks) Update(_ context.Context, m *entity.Milk) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return replace(r.s.state.milks, m.Id, func(x *entity.Milk) uuid.UUID { return x.Id }, cloneMilk(m))
}

func (r fakeMilks) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.state.milks = remove(r.s.state.milks, id, func(x *entity.Milk) uuid.UUID { return x.Id })
	return nil
}

func (r fakeMilks) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Milk, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return first(query(r.s.state.milks, milkCols, cloneMilk, specs)), nil
}

func (r fakeMilks) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Milk, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return query(r.s.state.milks, milkCols, cloneMilk, specs), nil
}

func (r fakeMilks) ListTypes(_ context.Context) ([]entity.MilkTypeSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sellers := map[string]map[uuid.UUID]bool{}
	for _, m := range r.s.state.milks {
		if !m.IsAvailable {
			continue
		}
		t := m.EffectiveType()
		if sellers[t] == nil {
			sellers[t] = map[uuid.UUID]bool{}
		}
		sellers[t][m.SellerId] = true
	}
	var res []entity.MilkTypeSummary
	for t, s := range sellers {
		res = append(res, entity.MilkTypeSummary{MilkType: t, SellerCount: len(s)})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].MilkType < res[j].MilkType })
	return res, nil
}

func (r fakeMilks) UpdateRating(_ context.Context, id uuid.UUID, agg entity.RatingAggregate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.state.milks {
		if m.Id == id {
			m.AverageRating = agg.Rounded()
			m.TotalRatings = agg.Count
		}
	}
	return nil
}

type fakeOrders struct{ s *fakeStore }

func (r fakeOrders) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("orders.Create"); err != nil {
		return err
	}
	r.s.state.orders = append(r.s.state.orders, cloneOrder(o))
	return nil
}

func (r fakeOrders) CreateBatch(_ context.Context, orders []*entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("orders.CreateBatch"); err != nil {
		return err
	}
	for _, o := range orders {
		r.s.state.orders = append(r.s.state.orders, cloneOrder(o))
	}
	return nil
}

func (r fakeOrders) Update(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return replace(r.s.state.orders, o.Id, func(x *entity.Order) uuid.UUID { return x.Id }, cloneOrder(o))
}

func (r fakeOrders) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return first(query(r.s.state.orders, orderCols, cloneOrder, specs)), nil
}

func (r fakeOrders) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return query(r.s.state.orders, orderCols, cloneOrder, specs), nil
}

type fakeSubs struct{ s *fakeStore }

func (r fakeSubs) Create(_ context.Context, sub *entity.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("subscriptions.Create"); err != nil {
		return err
	}
	c := cloneSub(sub)
	c.PausedDates = []entity.PausedDate{}
	r.s.state.subs = append(r.s.state.subs, c)
	return nil
}

// Update leaves paused dates alone; they live in their own table and are only added through AddPausedDate.
func (r fakeSubs) Update(_ context.Context, sub *entity.Subscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.state.subs {
		if existing.Id == sub.Id {
			c := cloneSub(sub)
			c.PausedDates = existing.PausedDates
			r.s.state.subs[i] = c
			return nil
		}
	}
	return fmt.Errorf("subscription %s not found", sub.Id)
}

func (r fakeSubs) AddPausedDate(_ context.Context, subId uuid.UUID, paused entity.PausedDate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.state.subs {
		if existing.Id != subId {
			continue
		}
		if existing.IsPausedOn(paused.Date) {
			return fmt.Errorf("duplicate key value violates unique constraint \"idx_subscription_paused_day\"")
		}
		existing.PausedDates = append(existing.PausedDates, paused)
		return nil
	}
	return fmt.Errorf("subscription %s not found", subId)
}

func (r fakeSubs) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return first(query(r.s.state.subs, subCols, cloneSub, specs)), nil
}

func (r fakeSubs) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return query(r.s.state.subs, subCols, cloneSub, specs), nil
}

type fakePayments struct{ s *fakeStore }

func (r fakePayments) Create(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.state.payments = append(r.s.state.payments, clonePayment(p))
	return nil
}

func (r fakePayments) Update(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return replace(r.s.state.payments, p.Id, func(x *entity.Payment) uuid.UUID { return x.Id }, clonePayment(p))
}

func (r fakePayments) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return first(query(r.s.state.payments, paymentCols, clonePayment, specs)), nil
}

func (r fakePayments) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return query(r.s.state.payments, paymentCols, clonePayment, specs), nil
}

func (r fakePayments) SumCompleted(_ context.Context, specs ...specification.Specification) (float64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := 0.0
	for _, p := range query(r.s.state.payments, paymentCols, clonePayment, specs) {
		if p.PaymentStatus == entity.PaymentStatusCompleted {
			total += p.Amount
		}
	}
	return total, nil
}

func (r fakePayments) MonthlyCompleted(_ context.Context, sellerId uuid.UUID, loc *time.Location, limit int) ([]entity.MonthlyEarning, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	buckets := map[[2]int]*entity.MonthlyEarning{}
	for _, p := range r.s.state.payments {
		if p.SellerId != sellerId || p.PaymentStatus != entity.PaymentStatusCompleted {
			continue
		}
		at := p.CreatedAt
		if p.PaidAt != nil {
			at = *p.PaidAt
		}
		at = at.In(loc)
		key := [2]int{at.Year(), int(at.Month())}
		if buckets[key] == nil {
			buckets[key] = &entity.MonthlyEarning{Year: key[0], Month: key[1]}
		}
		buckets[key].Total += p.Amount
		buckets[key].Count++
	}
	var res []entity.MonthlyEarning
	for _, b := range buckets {
		res = append(res, *b)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Year != res[j].Year {
			return res[i].Year > res[j].Year
		}
		return res[i].Month > res[j].Month
	})
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

type fakeRatings struct{ s *fakeStore }

func (r fakeRatings) Create(_ context.Context, rating *entity.Rating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.state.ratings = append(r.s.state.ratings, cloneRating(rating))
	return nil
}

func (r fakeRatings) Update(_ context.Context, rating *entity.Rating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return replace(r.s.state.ratings, rating.Id, func(x *entity.Rating) uuid.UUID { return x.Id }, cloneRating(rating))
}

func (r fakeRatings) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.state.ratings = remove(r.s.state.ratings, id, func(x *entity.Rating) uuid.UUID { return x.Id })
	return nil
}

func (r fakeRatings) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return first(query(r.s.state.ratings, ratingCols, cloneRating, specs)), nil
}

func (r fakeRatings) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Rating, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return query(r.s.state.ratings, ratingCols, cloneRating, specs), nil
}

func (r fakeRatings) SellerAggregate(_ context.Context, sellerId uuid.UUID) (entity.RatingAggregate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return aggregate(r.s.state.ratings, func(x *entity.Rating) *int {
		if x.SellerId != sellerId {
			return nil
		}
		return x.SellerRating
	}), nil
}

func (r fakeRatings) MilkAggregate(_ context.Context, milkId uuid.UUID) (entity.RatingAggregate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return aggregate(r.s.state.ratings, func(x *entity.Rating) *int {
		if x.MilkId == nil || *x.MilkId != milkId {
			return nil
		}
		return x.MilkRating
	}), nil
}

func aggregate(ratings []*entity.Rating, score func(*entity.Rating) *int) entity.RatingAggregate {
	sum, n := 0, 0
	for _, r := range ratings {
		if v := score(r); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return entity.RatingAggregate{}
	}
	return entity.RatingAggregate{Average: float64(sum) / float64(n), Count: n}
}

// --- collaborators ---

type notification struct {
	Audience string
	Event    string
	Payload  interface{}
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) Notify(_ context.Context, audience, event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{Audience: audience, Event: event, Payload: payload})
}

func (n *recordingNotifier) events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var res []string
	for _, s := range n.sent {
		res = append(res, s.Event)
	}
	return res
}

func (n *recordingNotifier) last() notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return notification{}
	}
	return n.sent[len(n.sent)-1]
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *recordingMailer) SendSellerWelcome(toEmail, _, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, toEmail)
	return m.err
}

type fakeGateway struct {
	enabled bool
	fail    bool
	created []paymentgateway.Transaction
}

func (g *fakeGateway) Enabled() bool { return g.enabled }

func (g *fakeGateway) CreateTransaction(tx paymentgateway.Transaction) (*paymentgateway.Checkout, error) {
	if g.fail {
		return nil, errInjected
	}
	g.created = append(g.created, tx)
	return &paymentgateway.Checkout{Token: "snap-" + tx.Reference, RedirectURL: "https://pay.example/" + tx.Reference}, nil
}

func (g *fakeGateway) VerifySignature(orderId, statusCode, grossAmount, signature string) bool {
	return signature == paymentgateway.Sign(orderId, statusCode, grossAmount, "test-key")
}

// --- fixtures ---

func newCustomer(store *fakeStore) *entity.User {
	return store.addUser(&entity.User{
		Id:       uuid.New(),
		Name:     "Asha",
		Email:    uuid.NewString()[:8] + "@customer.test",
		Role:     entity.UserRoleCustomer,
		IsActive: true,
		Address:  entity.Address{Street: "12 MG Road", City: "Pune", State: "MH", Pincode: "411001"},
	})
}

func newSeller(store *fakeStore) *entity.User {
	return store.addUser(&entity.User{
		Id:           uuid.New(),
		Name:         "Ravi",
		Email:        uuid.NewString()[:8] + "@seller.test",
		Role:         entity.UserRoleSeller,
		BusinessName: "Ravi Dairy",
		IsActive:     true,
	})
}

func newMilk(store *fakeStore, seller *entity.User, price float64) *entity.Milk {
	return store.addMilk(&entity.Milk{
		Id:            uuid.New(),
		SellerId:      seller.Id,
		MilkType:      entity.MilkTypeCow,
		PricePerLiter: price,
		FatPercentage: 4.5,
		IsAvailable:   true,
	})
}

func principal(u *entity.User) entity.Principal {
	return entity.Principal{Id: u.Id, Role: u.Role}
}
