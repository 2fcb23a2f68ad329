package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Items() ItemRepository
	Orders() OrderRepository
	Reports() ReportRepository
}
