package email

// receiptTemplate renders the customer-facing receipt for one transaction.
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Arial, sans-serif; color: #333; }
  .container { max-width: 480px; margin: 0 auto; padding: 20px; }
  .header { text-align: center; border-bottom: 2px solid #2c3e50; padding-bottom: 12px; }
  table { width: 100%; border-collapse: collapse; margin: 16px 0; }
  th, td { text-align: left; padding: 6px 4px; border-bottom: 1px solid #eee; }
  td.num, th.num { text-align: right; }
  .totals td { border-bottom: none; padding: 3px 4px; }
  .grand { font-weight: bold; font-size: 1.1em; }
  .footer { text-align: center; color: #999; font-size: 0.85em; margin-top: 24px; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h2>{{.StoreName}}</h2>
    <p>{{.StoreAddress}}</p>
  </div>

  <p>Terima kasih, {{.CustomerName}}!</p>
  <p>Receipt #{{.TransactionID}}<br>{{.Date}}</p>

  <table>
    <tr><th>Item</th><th class="num">Qty</th><th class="num">Subtotal</th></tr>
    {{range .Lines}}
    <tr><td>{{.Name}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.Subtotal}}</td></tr>
    {{end}}
  </table>

  <table class="totals">
    <tr><td>Subtotal</td><td class="num">{{.Subtotal}}</td></tr>
    <tr><td>Discount</td><td class="num">-{{.Discount}}</td></tr>
    <tr><td>Tax</td><td class="num">{{.Tax}}</td></tr>
    <tr class="grand"><td>Total</td><td class="num">{{.Total}}</td></tr>
    <tr><td>Paid via</td><td class="num">{{.PaymentMethod}}</td></tr>
  </table>

  <div class="footer">
    <p>Sampai jumpa kembali!</p>
  </div>
</div>
</body>
</html>
`

// dailyReportTemplate renders the owner's end-of-day summary.
const dailyReportTemplate = `
<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Arial, sans-serif; color: #333; }
  .container { max-width: 560px; margin: 0 auto; padding: 20px; }
  .header { border-bottom: 2px solid #2c3e50; padding-bottom: 12px; }
  table { width: 100%; border-collapse: collapse; margin: 16px 0; }
  th, td { text-align: left; padding: 6px 4px; border-bottom: 1px solid #eee; }
  td.num, th.num { text-align: right; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h2>{{.StoreName}} Daily Report</h2>
    <p>Shift {{.ShiftID}}</p>
  </div>

  <table>
    <tr><td>Total sales</td><td class="num">{{.TotalSales}}</td></tr>
    <tr><td>Transactions</td><td class="num">{{.TransactionCount}}</td></tr>
    <tr><td>Cash sales</td><td class="num">{{.CashSales}}</td></tr>
    <tr><td>Cash variance</td><td class="num">{{.CashVariance}}</td></tr>
    <tr><td>Expenses</td><td class="num">{{.ExpenseTotal}}</td></tr>
  </table>

  {{if .BestSellers}}
  <h3>Best sellers</h3>
  <table>
    <tr><th>Item</th><th class="num">Qty</th><th class="num">Revenue</th></tr>
    {{range .BestSellers}}
    <tr><td>{{.Name}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.Revenue}}</td></tr>
    {{end}}
  </table>
  {{end}}
</div>
</body>
</html>
`
