package handlers

//go:generate mockgen -source=../../../usecase/order_usecase.go -destination=mocks/order_usecase_mock.go -package=mocks
//go:generate mockgen -source=../../../usecase/payment_usecase.go -destination=mocks/payment_usecase_mock.go -package=mocks
//go:generate mockgen -source=../../../usecase/product_usecase.go -destination=mocks/product_usecase_mock.go -package=mocks
//go:generate mockgen -source=../../../usecase/customer_usecase.go -destination=mocks/customer_usecase_mock.go -package=mocks
