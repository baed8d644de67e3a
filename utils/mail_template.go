package utils

import "fmt"

// OTPMail is the password-reset body. The code is valid for 10 minutes.
func OTPMail(otp, name string) string {
	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #516ab6;">Password Reset Request</h2>
		<p>Dear %s,</p>
		<p>You have requested to reset your password. Please use the OTP below to proceed.
		This code is valid for <strong>10 minutes</strong>.</p>
		<div style="text-align: center; margin: 20px 0;">
			<span style="display: inline-block; background-color: #f0f4f8; padding: 15px 25px;
				border-radius: 8px; font-size: 24px; letter-spacing: 4px; font-weight: bold;">%s</span>
		</div>
		<p>If you did not request this, please ignore this email or contact support immediately.</p>
		<p>Warm regards,<br><strong>The JGEC Alumni Association</strong></p>
	</div>`, name, otp)
}

// RoomBookingMail confirms a paid booking; the PDF receipt rides along as
// an attachment.
func RoomBookingMail(name, roomName, roomType, checkIn, checkOut string, total float64, bookingID string) string {
	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #516ab6;">Booking Confirmed</h2>
		<p>Dear %s,</p>
		<p>Your room has been booked successfully. We look forward to hosting you.</p>
		<ul>
			<li><strong>Room:</strong> %s (%s)</li>
			<li><strong>Check-In:</strong> %s</li>
			<li><strong>Check-Out:</strong> %s</li>
			<li><strong>Amount Paid:</strong> &#8377;%.2f</li>
			<li><strong>Booking ID:</strong> %s</li>
		</ul>
		<p>Your payment receipt is attached to this email.</p>
		<p>Warm regards,<br><strong>The JGEC Alumni Association</strong></p>
	</div>`, name, roomName, roomType, checkIn, checkOut, total, bookingID)
}

// StayCompletionMail is sent by the daily notifier after checkout and
// links to the review page for the booking.
func StayCompletionMail(name, roomName, roomType, checkIn, checkOut string, bookingID uint, total float64, baseURL string) string {
	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #516ab6;">We Hope You Enjoyed Your Stay!</h2>
		<p>Dear %s,</p>
		<p>Thank you for staying with us. Here is a summary of your visit:</p>
		<ul>
			<li><strong>Room:</strong> %s (%s)</li>
			<li><strong>Check-In:</strong> %s</li>
			<li><strong>Check-Out:</strong> %s</li>
			<li><strong>Amount:</strong> &#8377;%.2f</li>
		</ul>
		<p>We would love to hear your feedback. It only takes a minute:</p>
		<p style="text-align: center;">
			<a href="%s/review/%d" style="background-color: #516ab6; color: #ffffff;
				padding: 12px 24px; border-radius: 6px; text-decoration: none;">Leave a Review</a>
		</p>
		<p>Warm regards,<br><strong>The JGEC Alumni Association</strong></p>
	</div>`, name, roomName, roomType, checkIn, checkOut, total, baseURL, bookingID)
}
