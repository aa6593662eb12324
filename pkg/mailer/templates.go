package mailer

import (
	"fmt"
	"strings"

	"github.com/bitebakers/brownie-backend/internal/app/model"
)

// VerificationEmail builds the account-verification message.
func VerificationEmail(frontendURL, token string) (subject, body string) {
	link := fmt.Sprintf("%s/verify?token=%s", frontendURL, token)
	subject = "Verify your email"
	body = fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
	<div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 40px; border-radius: 10px;">
		<h1 style="color: #4a2c17;">Welcome!</h1>
		<p style="color: #666; line-height: 1.6;">
			Thanks for signing up. Click the button below to verify your email address.
		</p>
		<p style="text-align: center; margin: 30px 0;">
			<a href="%s" style="background-color: #4a2c17; color: white; padding: 14px 28px; border-radius: 6px; text-decoration: none;">Verify email</a>
		</p>
		<p style="color: #999; font-size: 14px;">* This link is valid for 24 hours.</p>
		<p style="color: #999; font-size: 14px;">* If you did not sign up, you can ignore this email.</p>
	</div>
</body>
</html>
`, link)
	return subject, body
}

// PasswordResetEmail builds the password-reset message.
func PasswordResetEmail(frontendURL, token string) (subject, body string) {
	link := fmt.Sprintf("%s/reset-password?token=%s", frontendURL, token)
	subject = "Reset your password"
	body = fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
	<div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 40px; border-radius: 10px;">
		<h1 style="color: #4a2c17;">Password reset</h1>
		<p style="color: #666; line-height: 1.6;">
			We received a request to reset your password. Click the button below to choose a new one.
		</p>
		<p style="text-align: center; margin: 30px 0;">
			<a href="%s" style="background-color: #4a2c17; color: white; padding: 14px 28px; border-radius: 6px; text-decoration: none;">Reset password</a>
		</p>
		<p style="color: #999; font-size: 14px;">* This link is valid for 1 hour.</p>
		<p style="color: #999; font-size: 14px;">* If you did not request a reset, you can ignore this email.</p>
	</div>
</body>
</html>
`, link)
	return subject, body
}

// OrderConfirmationEmail builds the post-checkout confirmation message.
func OrderConfirmationEmail(order *model.Order) (subject, body string) {
	subject = fmt.Sprintf("Order %s confirmed", order.OrderNumber)

	var rows strings.Builder
	for _, item := range order.Items {
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding: 8px;">%s (%s)</td><td style="padding: 8px; text-align: center;">%d</td><td style="padding: 8px; text-align: right;">%.2f</td></tr>`,
			item.ProductName, item.VariantName, item.Quantity, item.Price*float64(item.Quantity),
		))
	}

	couponLine := ""
	if order.CouponCode != "" {
		couponLine = fmt.Sprintf(`<p style="color: #666;">Coupon applied: <strong>%s</strong></p>`, order.CouponCode)
	}

	body = fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
	<div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 40px; border-radius: 10px;">
		<h1 style="color: #4a2c17;">Thanks for your order!</h1>
		<p style="color: #666;">Order number: <strong>%s</strong></p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<tr style="background-color: #f8f9fa;"><th style="padding: 8px; text-align: left;">Item</th><th style="padding: 8px;">Qty</th><th style="padding: 8px; text-align: right;">Amount</th></tr>
			%s
		</table>
		%s
		<p style="color: #333; font-size: 18px; text-align: right;">Total: <strong>%.2f</strong></p>
		<p style="color: #999; font-size: 14px;">We'll let you know as soon as your brownies are out for delivery.</p>
	</div>
</body>
</html>
`, order.OrderNumber, rows.String(), couponLine, order.TotalAmount)
	return subject, body
}

// RefundEmail builds the message sent when an order is refunded.
func RefundEmail(order *model.Order) (subject, body string) {
	subject = fmt.Sprintf("Order %s refunded", order.OrderNumber)
	body = fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
	<div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 40px; border-radius: 10px;">
		<h1 style="color: #4a2c17;">Your order was refunded</h1>
		<p style="color: #666;">Order number: <strong>%s</strong></p>
		<p style="color: #666;">A refund of %.2f has been issued to your original payment method.
		Depending on your bank it can take a few business days to appear.</p>
	</div>
</body>
</html>
`, order.OrderNumber, order.TotalAmount)
	return subject, body
}
