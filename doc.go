// Package tempmail provides a Go client for the 1secmail disposable mailbox API.
//
// A Client is bound to one address, either generated by the service or
// validated locally against the email syntax, a list of reserved local parts
// and the domains the service currently offers.
//
// Basic usage:
//
//	ctx := context.Background()
//	client := tempmail.New(tempmail.WithTimeout(10 * time.Second))
//
//	if err := client.GenerateAddress(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Send mail to", client.Email())
//
//	summary, err := client.WaitForMessage(ctx, tempmail.WithWaitTimeout(2*time.Minute))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	msg, err := client.GetMessage(ctx, summary.ID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range msg.Attachments {
//	    if _, err := client.DownloadAttachment(ctx, msg.ID, a.Filename, a.Filename); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// Errors can be told apart with errors.Is for ErrInvalidFormat,
// ErrInvalidAddress, ErrMessageNotFound, ErrMalformedTimestamp and
// ErrAddressNotSet, and with errors.As for *NetworkError, *DecodeError,
// *ResponseError and *APIError. Nothing is retried.
package tempmail
