package usecase

import (
	"fmt"
	"time"

	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/model"
	"github.com/SdAm1n/DashAnalytics-sub000/internal/domain/repository"
)

// orderTimestampLayout formats the sale timestamp inside derived ids. The
// order id and the sale id prefix must match exactly.
const orderTimestampLayout = "20060102150405"

// OrderID derives the stable order id for a row. Rows with equal
// (customer, product, timestamp) collapse to one order.
func OrderID(customerID, productID int, orderDate time.Time) string {
	return fmt.Sprintf("ORD-%d-%d-%s", customerID, productID, orderDate.Format(orderTimestampLayout))
}

// ExtractCustomers deduplicates customers within a batch; the last occurrence
// of a customer id wins.
func ExtractCustomers(rows []Row) []model.Customer {
	index := make(map[int]int, len(rows))
	out := make([]model.Customer, 0, len(rows))
	for _, row := range rows {
		customer := model.Customer{
			CustomerID: row.CustomerID,
			Gender:     row.Gender,
			Age:        row.Age,
			City:       row.City,
		}
		if i, ok := index[row.CustomerID]; ok {
			out[i] = customer
			continue
		}
		index[row.CustomerID] = len(out)
		out = append(out, customer)
	}
	return out
}

// ExtractProducts deduplicates products within a batch; the last occurrence
// of a product id wins.
func ExtractProducts(rows []Row) []model.Product {
	index := make(map[int]int, len(rows))
	out := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		product := model.Product{
			ProductID:    row.ProductID,
			Name:         row.ProductName,
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Price:        row.Price,
		}
		if i, ok := index[row.ProductID]; ok {
			out[i] = product
			continue
		}
		index[row.ProductID] = len(out)
		out = append(out, product)
	}
	return out
}

// ExtractOrders builds order records keyed by the derived order id. Id
// collisions within a batch are not expected; if observed, the last wins.
func ExtractOrders(rows []Row) []model.Order {
	index := make(map[string]int, len(rows))
	out := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		order := model.Order{
			OrderID:       OrderID(row.CustomerID, row.ProductID, row.OrderDate),
			OrderDate:     row.OrderDate,
			CustomerID:    row.CustomerID,
			ProductID:     row.ProductID,
			Quantity:      row.Quantity,
			PaymentMethod: row.PaymentMethod,
			ReviewScore:   row.ReviewScore,
		}
		if i, ok := index[order.OrderID]; ok {
			out[i] = order
			continue
		}
		index[order.OrderID] = len(out)
		out = append(out, order)
	}
	return out
}

// ExtractSales builds sale records with computed revenue and profit. The sale
// id is "SALE-" plus the derived order id, keeping the linkage exact.
func ExtractSales(rows []Row, margin float64) []model.Sale {
	index := make(map[string]int, len(rows))
	out := make([]model.Sale, 0, len(rows))
	for _, row := range rows {
		revenue := revenueFor(row.Quantity, row.Price)
		sale := model.Sale{
			ID:         "SALE-" + OrderID(row.CustomerID, row.ProductID, row.OrderDate),
			CustomerID: row.CustomerID,
			ProductID:  row.ProductID,
			Quantity:   row.Quantity,
			SaleDate:   row.OrderDate,
			Revenue:    revenue,
			Profit:     profitFor(revenue, margin),
			City:       row.City,
		}
		if i, ok := index[sale.ID]; ok {
			out[i] = sale
			continue
		}
		index[sale.ID] = len(out)
		out = append(out, sale)
	}
	return out
}

// ExtractReviews emits a review for every row carrying a numeric score and
// splits the result by the routing rule: the first list goes to the low
// store, the second to the high store.
func ExtractReviews(rows []Row) (low []model.Review, high []model.Review) {
	for _, row := range rows {
		if row.ReviewScore == nil {
			continue
		}
		score := *row.ReviewScore
		review := model.Review{
			ID:          "REV-" + OrderID(row.CustomerID, row.ProductID, row.OrderDate),
			CustomerID:  row.CustomerID,
			ProductID:   row.ProductID,
			ReviewScore: score,
			Sentiment:   SentimentLabel(score),
			Text:        row.ReviewText,
			Date:        row.OrderDate,
		}
		if RouteReview(score) == repository.StoreLow {
			low = append(low, review)
		} else {
			high = append(high, review)
		}
	}
	return low, high
}
